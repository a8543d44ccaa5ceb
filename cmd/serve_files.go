package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/servers/files"
)

var serveFilesRoot string

func init() {
	serveCmd.AddCommand(serveFilesCmd)
	serveFilesCmd.Flags().StringVar(&serveFilesRoot, "root", ".", "directory the server is rooted at")
}

var serveFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "File browsing MCP server (list_files, read_file)",
	Args:  cobra.NoArgs,
	RunE:  runServeFiles,
}

func runServeFiles(cmd *cobra.Command, args []string) error {
	s, err := files.NewServer(Version, serveFilesRoot)
	if err != nil {
		return err
	}
	return serveMCP(s.MCP())
}
