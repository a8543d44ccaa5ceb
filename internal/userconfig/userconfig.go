package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when neither the config file nor the environment
// specifies a value.
const (
	DefaultProvider      = "ollama"
	DefaultOllamaModel   = "llama3.2:3b"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIKeyEnv  = "OPENAI_API_KEY"
	DefaultAzureKeyEnv   = "AZURE_OPENAI_API_KEY"
	DefaultAzureAPIVer   = "2024-12-01-preview"
	DefaultFeedURL       = "https://www.ynet.co.il/Integration/StoryRss2.xml"
)

// Ollama holds settings for a local ollama daemon.
type Ollama struct {
	BaseURL string `json:"base_url,omitempty"`
}

// OpenAI holds settings for an OpenAI-compatible endpoint.
// KeyEnv names the environment variable holding the API key; the key
// itself is never written to disk.
type OpenAI struct {
	BaseURL string `json:"base_url,omitempty"`
	KeyEnv  string `json:"key_env,omitempty"`
}

// Azure holds settings for an Azure OpenAI deployment.
type Azure struct {
	Endpoint   string `json:"endpoint,omitempty"`
	Deployment string `json:"deployment,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
	KeyEnv     string `json:"key_env,omitempty"`
}

// Config holds user-level preferences stored in ~/.config/mcptour/config.json.
type Config struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	FeedURL  string `json:"feed_url,omitempty"`
	Ollama   Ollama `json:"ollama,omitempty"`
	OpenAI   OpenAI `json:"openai,omitempty"`
	Azure    Azure  `json:"azure,omitempty"`
}

// ConfigDir returns the mcptour config directory (~/.config/mcptour).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding user config dir: %w", err)
	}
	return filepath.Join(base, "mcptour"), nil
}

// DefaultPath returns the path to the user config file (~/.config/mcptour/config.json).
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from path. Returns an empty config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &c, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0644)
}

// Resolve returns a copy with environment overrides applied on top of the
// file values, and built-in defaults filling whatever is still empty.
// Precedence: environment > config file > defaults.
func (c *Config) Resolve() *Config {
	r := *c

	override(&r.Provider, "MCPTOUR_PROVIDER")
	override(&r.Model, "MCPTOUR_MODEL")
	override(&r.FeedURL, "MCPTOUR_FEED_URL")
	override(&r.Ollama.BaseURL, "OLLAMA_HOST")
	override(&r.OpenAI.BaseURL, "OPENAI_BASE_URL")
	override(&r.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	override(&r.Azure.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	override(&r.Azure.APIVersion, "AZURE_OPENAI_API_VERSION")

	fill(&r.Provider, DefaultProvider)
	fill(&r.FeedURL, DefaultFeedURL)
	fill(&r.Ollama.BaseURL, DefaultOllamaBaseURL)
	fill(&r.OpenAI.BaseURL, DefaultOpenAIBaseURL)
	fill(&r.OpenAI.KeyEnv, DefaultOpenAIKeyEnv)
	fill(&r.Azure.APIVersion, DefaultAzureAPIVer)
	fill(&r.Azure.KeyEnv, DefaultAzureKeyEnv)

	if r.Model == "" && r.Provider == "ollama" {
		r.Model = DefaultOllamaModel
	}

	return &r
}

func override(dst *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*dst = v
	}
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
