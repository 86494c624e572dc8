package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

const maxFeedBody = 4 << 20

// Fetcher downloads and parses RSS/Atom feeds.
type Fetcher struct {
	client *http.Client
}

var _ ports.FeedFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets a sane default timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves one feed and returns its normalized items in feed order.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsTagger/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	items, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	return items, nil
}

// parseFeed tries RSS first, then Atom.
func parseFeed(body []byte) ([]domain.FeedItem, error) {
	var r rss
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&r); err == nil && len(r.Channel.Items) > 0 {
		return fromRSS(r), nil
	}

	var a atom
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&a); err == nil && len(a.Entries) > 0 {
		return fromAtom(a), nil
	}

	return nil, fmt.Errorf("not a parsable RSS or Atom document")
}

func fromRSS(r rss) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, len(r.Channel.Items))
	for _, it := range r.Channel.Items {
		summary := it.Description
		if strings.TrimSpace(summary) == "" {
			summary = it.Encoded
		}
		items = append(items, domain.FeedItem{
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Summary:     summary,
			PublishedAt: parseFeedDate(it.PubDate),
		})
	}
	return items
}

func fromAtom(a atom) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, len(a.Entries))
	for _, entry := range a.Entries {
		summary := entry.Summary
		if strings.TrimSpace(summary) == "" {
			summary = entry.Content
		}

		published := entry.Published
		if strings.TrimSpace(published) == "" {
			published = entry.Updated
		}

		items = append(items, domain.FeedItem{
			Title:       strings.TrimSpace(entry.Title),
			Link:        atomEntryLink(entry),
			Summary:     summary,
			PublishedAt: parseFeedDate(published),
		})
	}
	return items
}

func atomEntryLink(entry atomEntry) string {
	for _, link := range entry.Links {
		if link.Rel == "" || link.Rel == "alternate" {
			return strings.TrimSpace(link.Href)
		}
	}
	if len(entry.Links) > 0 {
		return strings.TrimSpace(entry.Links[0].Href)
	}
	return strings.TrimSpace(entry.ID)
}

var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

func parseFeedDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range feedDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Now().UTC()
}
