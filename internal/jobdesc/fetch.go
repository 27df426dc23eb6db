// Package jobdesc retrieves visible text from a job-posting URL. This is a
// courtesy best-effort fetch: one GET, readability extraction, and a minimum
// length check. Anything that fails falls back to manual paste in the UI.
package jobdesc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"codeberg.org/readeck/go-readability/v2"
)

// browserUserAgent avoids the instant bot rejection some job boards give the
// Go default user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// minTextLength below which an extraction is treated as a failed fetch
// (login walls, bot interstitials, empty shells)
const defaultMinTextLength = 200

const maxBodySize = 4 << 20

// FetchError represents a failed job-description retrieval
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch job description from %s", e.URL)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status: %d %s)", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves and extracts job-description text
type Fetcher struct {
	client *http.Client
	minLen int
	logger *slog.Logger
}

func NewFetcher(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{
		client: &http.Client{Timeout: 20 * time.Second},
		minLen: defaultMinTextLength,
		logger: logger,
	}
}

// Fetch downloads the page and returns its readable text. Short results are
// failures; the caller should prompt for manual paste.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("unsupported URL scheme: %s", parsedURL.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Debug("error closing response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil || article.Node == nil {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("no readable content found")}
	}

	var buf bytes.Buffer
	if err := article.RenderText(&buf); err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	text := buf.String()
	// rune count, not bytes: CJK postings would otherwise pass at a third
	// of the intended threshold
	chars := utf8.RuneCountInString(text)
	if chars < f.minLen {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("extracted text too short (%d chars)", chars)}
	}

	f.logger.Debug("job description fetched",
		"url", rawURL,
		"chars", chars,
	)
	return text, nil
}
