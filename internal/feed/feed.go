// Package feed fetches and formats RSS headlines for the rss demo server.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const fetchTimeout = 10 * time.Second

// Some feeds refuse non-browser clients, so the fetch presents itself
// as one.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Item is one feed entry reduced to what the headlines tool reports.
type Item struct {
	Title     string `json:"title"`
	Published string `json:"published"`
	Link      string `json:"link"`
}

// Fetch retrieves the raw feed document at url, following redirects.
func Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching feed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading feed body: %w", err)
	}
	return string(data), nil
}

// Parse extracts items from a raw feed document.
func Parse(raw string) ([]Item, error) {
	f, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		published := it.Published
		if published == "" {
			published = "No date"
		}
		items = append(items, Item{
			Title:     it.Title,
			Published: published,
			Link:      it.Link,
		})
	}
	return items, nil
}

// Format renders up to limit items as headline blocks separated by rules.
func Format(items []Item, limit int) string {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	blocks := make([]string, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, fmt.Sprintf("📰 %s\n📅 %s\n🔗 %s", it.Title, it.Published, it.Link))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// Headlines fetches, parses, and formats the newest limit entries of the
// feed at url.
func Headlines(ctx context.Context, url string, limit int) (string, error) {
	raw, err := Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	items, err := Parse(raw)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return Format(items, limit), nil
}
