package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestOllamaChat(t *testing.T) {
	var gotPayload struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
		Stream   bool      `json:"stream"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatal(err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "hello there"},
		})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3.2:3b")
	reply, err := o.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if reply != "hello there" {
		t.Errorf("reply = %q", reply)
	}
	if gotPayload.Model != "llama3.2:3b" {
		t.Errorf("model = %q", gotPayload.Model)
	}
	if gotPayload.Stream {
		t.Error("stream should be false")
	}
	if len(gotPayload.Messages) != 1 || gotPayload.Messages[0].Content != "hi" {
		t.Errorf("messages = %#v", gotPayload.Messages)
	}
}

func TestOllamaChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3.2:3b")
	_, err := o.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.2:3b", "size": 2019393189},
				{"name": "qwen2.5:7b", "size": 4683087332},
			},
		})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3.2:3b")
	models, err := o.ListModels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"llama3.2:3b", "qwen2.5:7b"}
	if !reflect.DeepEqual(models, want) {
		t.Errorf("models = %v, want %v", models, want)
	}
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	}))

	o := NewOllama(srv.URL, "llama3.2:3b")
	if err := o.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want nil", err)
	}

	srv.Close()
	if err := o.Ping(context.Background()); err == nil {
		t.Error("Ping() after shutdown should fail")
	}
}
