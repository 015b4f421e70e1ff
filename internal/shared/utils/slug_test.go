package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Best Longreads", "best-longreads"},
		{"mixed case", "The WEEK in Review", "the-week-in-review"},
		{"diacritics folded", "Café Crème à Noël", "cafe-creme-a-noel"},
		{"punctuation stripped", "What's New? (2026 Edition!)", "whats-new-2026-edition"},
		{"consecutive separators collapse", "a  --  b", "a-b"},
		{"leading and trailing trimmed", "  -Hello-  ", "hello"},
		{"numbers kept", "Top 10 Stories", "top-10-stories"},
		{"empty input", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Zelazny", RemoveDiacritics("Żelazny"))
	assert.Equal(t, "uber", RemoveDiacritics("über"))
	assert.Equal(t, "plain", RemoveDiacritics("plain"))
}
