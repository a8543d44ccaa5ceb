package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/chat"
	"github.com/aisummerdays/mcptour/internal/exitcode"
	"github.com/aisummerdays/mcptour/internal/jsonout"
	"github.com/aisummerdays/mcptour/internal/llm"
	"github.com/aisummerdays/mcptour/internal/tui"
	"github.com/aisummerdays/mcptour/internal/userconfig"
)

const chatQueryTimeout = 5 * time.Minute

var (
	chatProvider string
	chatModel    string
	chatPlain    bool
)

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatProvider, "provider", "", "model backend: ollama, openai, or azure (default: configured provider)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "model name (default: configured model)")
	chatCmd.Flags().StringVar(&toolsServerName, "server", "", "built-in server to spawn (demo, rss, files)")
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "line-based loop instead of the TUI")
}

var chatCmd = &cobra.Command{
	Use:   "chat [-- <server command>]",
	Short: "Chat with a model that can use an MCP server's tools",
	Long: `Chat with a language model that has access to an MCP server's tools.

The model is prompted with the server's tool inventory and asks for tool
calls explicitly; mcptour runs them over the MCP session and feeds the
results back.

Examples:
  mcptour chat --server demo
  mcptour chat --server rss --provider ollama --model llama3.2:3b
  mcptour chat --provider azure -- python server.py`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	if jsonout.Enabled {
		return exitcode.New("interactive_only", exitcode.InteractiveOnly,
			"chat requires an interactive terminal and cannot be used with --json")
	}

	cfg, err := loadResolvedConfig()
	if err != nil {
		return err
	}

	providerName := chatProvider
	if providerName == "" {
		providerName = cfg.Provider
	}
	model := chatModel
	if model == "" {
		model = cfg.Model
	}

	provider, err := buildProvider(cfg, providerName, model)
	if err != nil {
		return err
	}

	if o, ok := provider.(*llm.Ollama); ok {
		checkOllama(cmd.Context(), o)
	}

	session, _, err := connectSession(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	tools := session.Tools()
	fmt.Fprintf(jsonout.MsgOut(), "Connected to %s with %d tools:\n", session.ServerName(), len(tools))
	for _, t := range tools {
		fmt.Fprintf(jsonout.MsgOut(), "  - %s: %s\n", t.Name, t.Description)
	}

	engine := chat.NewEngine(provider, session)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	if chatPlain || !interactive {
		return plainChatLoop(cmd.Context(), engine)
	}

	return tui.Run(engine, tui.Meta{
		Provider: provider.Name(),
		Model:    model,
		Server:   session.ServerName(),
	})
}

// buildProvider constructs the requested backend from resolved config.
// API keys come from the environment variable the config names; they are
// never stored in the config file itself.
func buildProvider(cfg *userconfig.Config, name, model string) (llm.Provider, error) {
	switch name {
	case "ollama":
		if model == "" {
			model = userconfig.DefaultOllamaModel
		}
		return llm.NewOllama(cfg.Ollama.BaseURL, model), nil

	case "openai":
		if model == "" {
			return nil, fmt.Errorf("openai provider requires --model or a configured model")
		}
		key := os.Getenv(cfg.OpenAI.KeyEnv)
		if key == "" {
			return nil, fmt.Errorf("openai provider requires an API key in $%s", cfg.OpenAI.KeyEnv)
		}
		return llm.NewOpenAI(cfg.OpenAI.BaseURL, key, model), nil

	case "azure":
		if cfg.Azure.Endpoint == "" || cfg.Azure.Deployment == "" {
			return nil, fmt.Errorf("azure provider requires endpoint and deployment (mcptour config show)")
		}
		key := os.Getenv(cfg.Azure.KeyEnv)
		if key == "" {
			return nil, fmt.Errorf("azure provider requires an API key in $%s", cfg.Azure.KeyEnv)
		}
		return llm.NewAzure(cfg.Azure.Endpoint, cfg.Azure.Deployment, cfg.Azure.APIVersion, key), nil

	default:
		return nil, fmt.Errorf("provider %q not found (want ollama, openai, or azure)", name)
	}
}

// checkOllama pings the daemon and prints remediation hints on failure.
// The chat still starts — the daemon may come up later.
func checkOllama(ctx context.Context, o *llm.Ollama) {
	out := jsonout.MsgOut()
	if err := o.Ping(ctx); err != nil {
		fmt.Fprintln(out, "Warning: could not connect to Ollama. Make sure:")
		fmt.Fprintln(out, "  1. Ollama is installed")
		fmt.Fprintln(out, "  2. The server is running (ollama serve)")
		fmt.Fprintf(out, "  3. Model %q is available (ollama pull %s)\n", o.Model, o.Model)
		return
	}
	models, err := o.ListModels(ctx)
	if err != nil || len(models) == 0 {
		return
	}
	for _, m := range models {
		if m == o.Model {
			return
		}
	}
	fmt.Fprintf(out, "Warning: model %q not found on the Ollama server. Available: %s\n",
		o.Model, strings.Join(models, ", "))
}

// plainChatLoop is the non-TUI fallback: read a query per line, print
// the reply. "quit" or "exit" ends the session.
func plainChatLoop(ctx context.Context, engine *chat.Engine) error {
	fmt.Println("mcptour chat started. Type quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuery: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			return nil
		}

		qctx, cancel := context.WithTimeout(ctx, chatQueryTimeout)
		reply, err := engine.Process(qctx, query)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("\nResponse:\n%s\n", reply)
	}
}
