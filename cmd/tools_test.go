package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestServerCommandExplicit(t *testing.T) {
	toolsServerName = ""
	defer func() { toolsServerName = "" }()

	command, args, err := serverCommand([]string{"python", "server.py", "--flag"})
	if err != nil {
		t.Fatal(err)
	}
	if command != "python" {
		t.Errorf("command = %q", command)
	}
	if !reflect.DeepEqual(args, []string{"server.py", "--flag"}) {
		t.Errorf("args = %v", args)
	}
}

func TestServerCommandBuiltin(t *testing.T) {
	toolsServerName = "demo"
	defer func() { toolsServerName = "" }()

	command, args, err := serverCommand(nil)
	if err != nil {
		t.Fatal(err)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(command) != filepath.Base(exe) {
		t.Errorf("command = %q, want own binary", command)
	}
	if !reflect.DeepEqual(args, []string{"serve", "demo"}) {
		t.Errorf("args = %v", args)
	}
}

func TestServerCommandExplicitBeatsBuiltin(t *testing.T) {
	toolsServerName = "demo"
	defer func() { toolsServerName = "" }()

	command, _, err := serverCommand([]string{"node", "server.js"})
	if err != nil {
		t.Fatal(err)
	}
	if command != "node" {
		t.Errorf("command = %q, explicit command should win", command)
	}
}

func TestServerCommandUnknownBuiltin(t *testing.T) {
	toolsServerName = "weather"
	defer func() { toolsServerName = "" }()

	_, _, err := serverCommand(nil)
	if err == nil {
		t.Fatal("expected error for unknown built-in")
	}
	if !strings.Contains(err.Error(), "weather") {
		t.Errorf("error = %q", err)
	}
}

func TestServerCommandNoneSpecified(t *testing.T) {
	toolsServerName = ""

	_, _, err := serverCommand(nil)
	if err == nil {
		t.Fatal("expected error when no server is specified")
	}
}

func TestParseToolArgs(t *testing.T) {
	got, err := parseToolArgs([]string{"a=2", "rate=0.06", "pattern=**/*.go", "force=true"})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"a":       2,
		"rate":    0.06,
		"pattern": "**/*.go",
		"force":   true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParseToolArgsInvalid(t *testing.T) {
	for _, bad := range []string{"novalue", "=5"} {
		if _, err := parseToolArgs([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
