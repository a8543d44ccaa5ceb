package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/servers/demo"
)

func init() {
	serveCmd.AddCommand(serveDemoCmd)
}

var serveDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Calculator MCP server (add, compound_interest)",
	Args:  cobra.NoArgs,
	RunE:  runServeDemo,
}

func runServeDemo(cmd *cobra.Command, args []string) error {
	return serveMCP(demo.NewServer(Version))
}
