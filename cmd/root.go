package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/exitcode"
	"github.com/aisummerdays/mcptour/internal/jsonout"
)

var rootCmd = &cobra.Command{
	Use:   "mcptour",
	Short: "MCP demo servers and an LLM-backed MCP client",
	Long: `mcptour is a guided tour of the Model Context Protocol: demo MCP
servers you can plug into any MCP host, plus a chat client that wires
those servers to a local or hosted language model.

Start with "mcptour serve demo" and "mcptour tools list --server demo",
then try "mcptour chat --server demo".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonout.Enabled, "json", false, "machine-readable JSON output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if jsonout.Enabled {
			jsonout.SetMsgOut(os.Stderr)
		} else if !isatty.IsTerminal(os.Stdout.Fd()) {
			// Keep piped stdout clean of progress chatter.
			jsonout.SetMsgOut(os.Stderr)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitcode.ExitError
		if errors.As(err, &ee) {
			fail(ee.Code, ee.Error(), ee.ExitCode)
		}
		code, exit := exitcode.ClassifyError(err)
		fail(code, err.Error(), exit)
	}
}

func fail(code, msg string, exit int) {
	if jsonout.Enabled {
		jsonout.WriteError(code, msg, exit)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(exit)
}
