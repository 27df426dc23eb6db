package genclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray_Fenced(t *testing.T) {
	text := "Sure, here are the questions:\n```json\n[{\"question\": \"Q1\", \"intent\": \"I1\"}]\n```\nLet me know if you need more."

	raw, err := ExtractJSONArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question": "Q1", "intent": "I1"}]`, string(raw))
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	_, err := ExtractJSONArray("I could not produce any questions this time.")
	assert.ErrorIs(t, err, ErrNoJSONArray)
}

func TestExtractJSONArray_BracketsInProse(t *testing.T) {
	// the [sic] fragment is not valid JSON and must be skipped over
	text := `The list [sic] follows: [{"question": "Q", "intent": "I"}]`

	raw, err := ExtractJSONArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question": "Q", "intent": "I"}]`, string(raw))
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "plain array",
			text: `[{"question": "Q1", "intent": "I1"}, {"question": "Q2", "intent": "I2"}]`,
			want: 2,
		},
		{
			name: "array inside prose and fences",
			text: "Here you go!\n```\n[{\"question\": \"Q1\", \"intent\": \"I1\"}]\n```",
			want: 1,
		},
		{
			name: "no array at all",
			text: "Sorry, I can't help with that.",
			want: 0,
		},
		{
			name: "wrong element shape skipped",
			text: `scores [1, 2, 3] then [{"question": "Q", "intent": "I"}]`,
			want: 1,
		},
		{
			name: "entries without question dropped",
			text: `[{"question": "Q1", "intent": "I1"}, {"intent": "orphan"}, {"question": "  "}]`,
			want: 1,
		},
		{
			name: "truncated output",
			text: `[{"question": "Q1", "inte`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := ParseItems(tt.text)
			assert.Len(t, items, tt.want)
			for _, it := range items {
				assert.NotEmpty(t, it.Question)
			}
		})
	}
}

func TestParseItems_PreservesOrder(t *testing.T) {
	items := ParseItems(`[{"question": "first"}, {"question": "second"}, {"question": "third"}]`)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Question)
	assert.Equal(t, "second", items[1].Question)
	assert.Equal(t, "third", items[2].Question)
}
