package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobDescription_PasteWins(t *testing.T) {
	req := GenerateRequest{
		JDText:    "Custom JD text",
		JDFetched: "Senior Engineer role at a large company...",
	}
	assert.Equal(t, "Custom JD text", req.JobDescription())

	req.JDText = ""
	assert.Equal(t, "Senior Engineer role at a large company...", req.JobDescription())
}

func TestBuildInstruction_UsesPastedText(t *testing.T) {
	req := GenerateRequest{
		Level:     "senior",
		JDText:    "Custom JD text",
		JDFetched: "Fetched role description",
	}
	instruction := BuildInstruction(CategoryTransform, req)

	assert.Contains(t, instruction, "Custom JD text")
	assert.NotContains(t, instruction, "Fetched role description")
	assert.Contains(t, instruction, "senior")
	assert.Contains(t, instruction, "JSON array")
}

func TestBuildInstruction_TruncatesLongJD(t *testing.T) {
	req := GenerateRequest{
		JDText: strings.Repeat("가나다라 requirements ", 1000),
	}
	instruction := BuildInstruction(CategoryTomorrow, req)

	// the instruction carries at most the JD budget plus the fixed template
	assert.Less(t, len([]rune(instruction)), jdBudget+1000)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	// multi-byte runes are never split
	assert.Equal(t, "가나", truncate("가나다", 2))
	assert.Equal(t, "abc", truncate("  abc  ", 10))
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryTransform.Valid())
	assert.False(t, Category("weird").Valid())
	assert.Equal(t, "Transform", CategoryTransform.Label())
	assert.Len(t, Categories(), 3)
}
