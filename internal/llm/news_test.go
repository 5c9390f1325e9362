package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

func TestCleanJSON(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{name: "Bare", input: `[{"a":1}]`, want: `[{"a":1}]`},
		{name: "Fenced", input: "```json\n[{\"a\":1}]\n```", want: `[{"a":1}]`},
		{name: "Prose", input: "Here you go: [1, 2] hope it helps", want: `[1, 2]`},
		{name: "NoArray", input: "nothing", want: "nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.CleanJSON(tt.input))
		})
	}
}

func TestParseNews(t *testing.T) {
	got := llm.ParseNews([]byte(`[{"headline":"A","summary":"s","source":"x"},{"headline":" ","summary":"skip"}]`))
	assert.Equal(t, []llm.NewsItem{{Headline: "A", Summary: "s", Source: "x"}}, got)

	assert.Empty(t, llm.ParseNews([]byte(`{"headline":"not an array"}`)))
	assert.Empty(t, llm.ParseNews([]byte(`garbage`)))
	assert.NotNil(t, llm.ParseNews([]byte(`garbage`)))
}
