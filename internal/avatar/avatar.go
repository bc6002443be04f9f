// Package avatar fetches a random person emoji from EmojiHub to decorate
// assistant bubbles. The fetch is purely cosmetic: the contract has no error
// path, and any failure yields a fixed default glyph.
package avatar

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// DefaultGlyph is returned whenever EmojiHub cannot be reached.
const DefaultGlyph = "🧑‍🎨"

const categoryPath = "/random/category/smileys-and-people"

type Fetcher struct {
	baseURL string
	client  *http.Client
}

func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch returns an HTML fragment rendering one random person emoji, or
// DefaultGlyph on any failure.
func (f *Fetcher) Fetch(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+categoryPath, nil)
	if err != nil {
		return DefaultGlyph
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return DefaultGlyph
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return DefaultGlyph
	}

	var payload struct {
		HTMLCode []string `json:"htmlCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return DefaultGlyph
	}
	if len(payload.HTMLCode) == 0 {
		return DefaultGlyph
	}
	return strings.Join(payload.HTMLCode, "")
}
