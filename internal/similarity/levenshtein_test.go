package similarity

import (
	"testing"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "google", 6},
		{"paypal", "", 6},
		{"google", "google", 0},
		{"go0gle", "google", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"amazon", "amaz0n", 1},
		{"apple", "appel", 2},
		{"раypal", "paypal", 2}, // Cyrillic р and а
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistanceProperties(t *testing.T) {
	words := []string{
		"", "a", "google", "go0gle", "paypa1-login", "microsoft", "micr0s0ft",
		"netflix.com", "nettflix", "ünïcödé", "αβγ", "facebook", "faceb00k-secure",
	}

	for _, a := range words {
		assert.Equal(t, 0, EditDistance(a, a), "identity for %q", a)
		assert.Equal(t, len([]rune(a)), EditDistance("", a), "empty vs %q", a)

		for _, b := range words {
			d := EditDistance(a, b)
			assert.Equal(t, d, EditDistance(b, a), "symmetry for %q/%q", a, b)
			assert.Equal(t, levenshtein.ComputeDistance(a, b), d, "levenshtein oracle for %q/%q", a, b)
			assert.Equal(t, fuzzy.LevenshteinDistance(a, b), d, "fuzzysearch oracle for %q/%q", a, b)
		}
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("go0gle", "google", 2))
	assert.True(t, Within("g00gle", "google", 2))
	assert.False(t, Within("g000le", "google", 2))
}
