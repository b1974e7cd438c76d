package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inspector-binding/internal/match"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"hp", "hp", 0},
		{"", "max", 3},
		{"max", "", 3},
		{"a", "b", 1},
		{"hp", "hpx", 1},
		{"maxhp", "max", 2},
		{"kitten", "sitting", 3},
		{"health", "wealth", 1},
		{"Max", "max", 1},
		{"maxhealth", "maxhp", 5},
		{"getcount", "count", 3},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, match.Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, match.Distance(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"speed", "speed", 1},
		{"abc", "xyz", 0},
		{"health", "wealth", 1 - 1.0/6},
		{"max", "ma", 1 - 1.0/3},
		{"größe", "große", 1 - 1.0/5},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, match.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func BenchmarkSimilarity(b *testing.B) {
	for b.Loop() {
		match.Similarity(match.Fold("MaxHealthPoints"), match.Fold("max_health_points"))
	}
}
