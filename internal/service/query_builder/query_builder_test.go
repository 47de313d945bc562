package query_builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	builder := New()

	testCases := []struct {
		name     string
		moods    []string
		note     string
		expected string
	}{
		{
			name:     "Should expand known mood",
			moods:    []string{"funny"},
			expected: "funny hilarious comedy humor laugh entertaining",
		},
		{
			name:     "Should pass unknown mood through unchanged",
			moods:    []string{"melancholic"},
			expected: "melancholic",
		},
		{
			name:     "Should join expanded moods with note",
			moods:    []string{"romantic"},
			note:     "set in Paris",
			expected: "romantic love story relationship passion romance drama set in Paris",
		},
		{
			name:     "Should use note alone when no moods given",
			note:     "  something with space travel  ",
			expected: "something with space travel",
		},
		{
			name:     "Should keep mood order",
			moods:    []string{"dark", "intense"},
			expected: "dark gritty noir disturbing crime horror thriller intense gripping suspenseful high-stakes action thriller crime",
		},
		{
			name:     "Should return empty string for empty input",
			moods:    nil,
			note:     "   ",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, builder.Build(tc.moods, tc.note))
		})
	}
}
