package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/jsonout"
	"github.com/aisummerdays/mcptour/internal/llm"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the Ollama server",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig()
	if err != nil {
		return err
	}

	o := llm.NewOllama(cfg.Ollama.BaseURL, "")
	if err := o.Ping(cmd.Context()); err != nil {
		return err
	}

	models, err := o.ListModels(cmd.Context())
	if err != nil {
		return err
	}

	if jsonout.Enabled {
		return jsonout.Write(struct {
			Models []string `json:"models"`
		}{Models: models})
	}

	if len(models) == 0 {
		fmt.Println("No models installed. Pull one with: ollama pull llama3.2:3b")
		return nil
	}
	for _, m := range models {
		fmt.Println(m)
	}
	return nil
}
