package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/servers/rss"
)

var serveRSSFeedURL string

func init() {
	serveCmd.AddCommand(serveRSSCmd)
	serveRSSCmd.Flags().StringVar(&serveRSSFeedURL, "feed-url", "", "RSS feed URL (default: configured feed)")
}

var serveRSSCmd = &cobra.Command{
	Use:   "rss",
	Short: "News headlines MCP server (get_headlines)",
	Args:  cobra.NoArgs,
	RunE:  runServeRSS,
}

func runServeRSS(cmd *cobra.Command, args []string) error {
	feedURL := serveRSSFeedURL
	if feedURL == "" {
		cfg, err := loadResolvedConfig()
		if err != nil {
			return err
		}
		feedURL = cfg.FeedURL
	}
	return serveMCP(rss.NewServer(Version, feedURL).MCP())
}
