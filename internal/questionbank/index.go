// Package questionbank indexes every candidate a session has seen so the
// interviewer can search earlier generations before curating.
package questionbank

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Entry is one searchable question
type Entry struct {
	Question string `json:"question"`
	Intent   string `json:"intent"`
	Category string `json:"category"`
}

// Index is an in-memory bleve index scoped to one session. It lives and dies
// with the session; nothing is persisted.
type Index struct {
	mu   sync.Mutex
	idx  bleve.Index
	next int
}

func New() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create memory index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Add indexes entries, assigning sequential document ids
func (i *Index) Add(entries ...Entry) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, e := range entries {
		i.next++
		id := fmt.Sprintf("q-%d", i.next)
		doc := map[string]interface{}{
			"question": e.Question,
			"intent":   e.Intent,
			"category": e.Category,
		}
		if err := i.idx.Index(id, doc); err != nil {
			return fmt.Errorf("failed to index question: %w", err)
		}
	}
	return nil
}

// Search runs a match query over question, intent and category text and
// returns up to limit entries, best match first.
func (i *Index) Search(q string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Fields = []string{"*"}

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	entries := make([]Entry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		entries = append(entries, Entry{
			Question: fieldString(hit.Fields, "question"),
			Intent:   fieldString(hit.Fields, "intent"),
			Category: fieldString(hit.Fields, "category"),
		})
	}
	return entries, nil
}

// Close releases the index. Safe to call once per session teardown.
func (i *Index) Close() error {
	return i.idx.Close()
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
