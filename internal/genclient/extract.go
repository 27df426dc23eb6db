package genclient

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONArray indicates no parseable JSON array was found in the text
var ErrNoJSONArray = errors.New("no JSON array found in model output")

// eachJSONArray walks every syntactically valid JSON array embedded in
// free-form text (surrounding prose, code fences). Candidate start positions
// are every '[' in the text. fn returning true stops the scan; eachJSONArray
// reports whether any invocation accepted.
func eachJSONArray(text string, fn func(raw json.RawMessage) bool) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		if fn(raw) {
			return true
		}
	}
	return false
}

// ExtractJSONArray returns the first JSON array embedded in model output,
// verbatim. Returns ErrNoJSONArray if none decodes.
func ExtractJSONArray(text string) (json.RawMessage, error) {
	var found json.RawMessage
	ok := eachJSONArray(text, func(raw json.RawMessage) bool {
		found = raw
		return true
	})
	if !ok {
		return nil, ErrNoJSONArray
	}
	return found, nil
}

// ParseItems applies the empty-on-failure contract: any output that does not
// contain a well-formed item array yields an empty slice, never an error.
// Arrays of the wrong shape are skipped in favor of a later match; entries
// without question text are dropped.
func ParseItems(text string) []Item {
	var out []Item
	eachJSONArray(text, func(raw json.RawMessage) bool {
		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return false
		}
		out = make([]Item, 0, len(items))
		for _, it := range items {
			if strings.TrimSpace(it.Question) == "" {
				continue
			}
			out = append(out, it)
		}
		return true
	})
	return out
}
