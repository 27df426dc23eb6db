// Package export assembles the curated notes into a plain-text transcript.
// The output is deterministic for a given note state: exporting twice without
// intervening edits produces byte-identical files, so nothing time-dependent
// belongs in here.
package export

import (
	"fmt"
	"strings"

	"github.com/jkwon-dev/interviewkit/internal/session"
)

const separator = "=================================================="
const divider = "--------------------------------------------------"

// Meta is the header information for a transcript
type Meta struct {
	CandidateName string
	Level         string
	Interviewer   string
}

// Transcript renders the notes as the downloadable text document
func Transcript(meta Meta, notes []session.CuratedNote) []byte {
	var b strings.Builder

	b.WriteString("Interview Notes\n")
	fmt.Fprintf(&b, "Candidate: %s\n", orDash(meta.CandidateName))
	fmt.Fprintf(&b, "Level: %s\n", orDash(meta.Level))
	fmt.Fprintf(&b, "Interviewer: %s\n", orDash(meta.Interviewer))
	b.WriteString(separator + "\n")

	for _, note := range notes {
		fmt.Fprintf(&b, "[%s] %s\n", note.Category, note.Question)
		b.WriteString(divider + "\n")
		memo := strings.TrimSpace(note.Memo)
		if memo == "" {
			memo = "(no notes)"
		}
		b.WriteString(memo + "\n")
		b.WriteString(separator + "\n")
	}

	return []byte(b.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
