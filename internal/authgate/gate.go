// Package authgate validates interviewer access codes against a published
// spreadsheet. It is a convenience gate, not an access-control system: a
// plaintext equality check against a two-column CSV (code, display name),
// fetched fresh on every attempt.
package authgate

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ErrUnknownCode indicates the entered code is not on the access list
var ErrUnknownCode = errors.New("access code not recognized")

// ListError represents a failure to retrieve or parse the access list,
// distinct from a wrong code so the UI can say "try again later" instead of
// "wrong code".
type ListError struct {
	Status int
	Err    error
}

func (e *ListError) Error() string {
	msg := "failed to load access list"
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status: %d %s)", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// Spreadsheet exports quietly mangle numeric-looking codes: thousands
// separators and a trailing ".0" (or ".00") appear in the CSV even though
// the sheet shows a clean value.
var decimalArtifact = regexp.MustCompile(`\.0*$`)

// NormalizeCode strips whitespace and spurious numeric formatting artifacts
// so the stored and entered forms of a code compare equal.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, ",", "")
	return decimalArtifact.ReplaceAllString(code, "")
}

// Gate checks access codes against a remote CSV list
type Gate struct {
	listURL string
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

func New(listURL string, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gate{
		listURL: listURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		now:     time.Now,
	}
}

// Authenticate fetches the current access list and returns the display name
// registered for the code. The list is never cached across attempts; a
// cache-busting parameter defeats intermediary caching too.
func (g *Gate) Authenticate(ctx context.Context, code string) (string, error) {
	records, err := g.fetchList(ctx)
	if err != nil {
		return "", err
	}

	want := NormalizeCode(code)
	if want == "" {
		return "", ErrUnknownCode
	}
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		if NormalizeCode(rec[0]) == want {
			return strings.TrimSpace(rec[1]), nil
		}
	}
	return "", ErrUnknownCode
}

func (g *Gate) fetchList(ctx context.Context) ([][]string, error) {
	sep := "?"
	if strings.Contains(g.listURL, "?") {
		sep = "&"
	}
	freshURL := fmt.Sprintf("%s%s_=%d", g.listURL, sep, g.now().Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, freshURL, nil)
	if err != nil {
		return nil, &ListError{Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &ListError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Debug("error closing access list body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &ListError{Status: resp.StatusCode}
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ListError{Err: err}
	}

	g.logger.Debug("access list fetched",
		"rows", len(records),
	)
	return records, nil
}
