package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/jsonout"
	"github.com/aisummerdays/mcptour/internal/userconfig"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize user configuration",
	Long: `User configuration lives in ~/.config/mcptour/config.json and covers
the default provider and model, provider endpoints, and the feed URL for
the rss server. Environment variables override file values; API keys are
referenced by environment variable name and never stored.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

// loadResolvedConfig loads the user config file with env overrides and
// defaults applied.
func loadResolvedConfig() (*userconfig.Config, error) {
	path, err := userconfig.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := userconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(), nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig()
	if err != nil {
		return err
	}

	if jsonout.Enabled {
		return jsonout.Write(cfg)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := userconfig.DefaultPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := &userconfig.Config{
		Provider: userconfig.DefaultProvider,
		Model:    userconfig.DefaultOllamaModel,
		FeedURL:  userconfig.DefaultFeedURL,
		Ollama:   userconfig.Ollama{BaseURL: userconfig.DefaultOllamaBaseURL},
		OpenAI: userconfig.OpenAI{
			BaseURL: userconfig.DefaultOpenAIBaseURL,
			KeyEnv:  userconfig.DefaultOpenAIKeyEnv,
		},
		Azure: userconfig.Azure{
			APIVersion: userconfig.DefaultAzureAPIVer,
			KeyEnv:     userconfig.DefaultAzureKeyEnv,
		},
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(jsonout.MsgOut(), "Wrote %s\n", path)
	if jsonout.Enabled {
		return jsonout.Write(struct {
			Path string `json:"path"`
		}{Path: path})
	}
	return nil
}
