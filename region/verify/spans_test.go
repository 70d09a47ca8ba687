package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpans_DisjointAndAdjacent(t *testing.T) {
	s := NewSpans()
	require.NoError(t, s.Add(16, 8))
	require.NoError(t, s.Add(32, 16))
	require.NoError(t, s.Add(24, 8), "touching ranges do not overlap")
	assert.Equal(t, 3, s.Len())
}

func TestSpans_Overlap(t *testing.T) {
	tests := []struct {
		name string
		off  uint32
		n    int
	}{
		{"same start", 100, 4},
		{"tail overlaps", 90, 16},
		{"head overlaps", 120, 16},
		{"contains", 96, 64},
		{"inside", 104, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpans()
			require.NoError(t, s.Add(100, 32))

			err := s.Add(tt.off, tt.n)
			require.Error(t, err)
			require.Contains(t, err.Error(), "overlaps live payload")
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestSpans_Remove(t *testing.T) {
	s := NewSpans()
	require.NoError(t, s.Add(64, 32))
	s.Remove(64)
	assert.Equal(t, 0, s.Len())
	require.NoError(t, s.Add(72, 8))
}
