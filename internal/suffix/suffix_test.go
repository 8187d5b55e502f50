package suffix

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		i    int
		want string
	}{
		{0, "aa"},
		{1, "ab"},
		{25, "az"},
		{26, "ba"},
		{Max - 1, "zz"},
	}
	for _, tt := range tests {
		got, err := Gen(tt.i)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "index %d", tt.i)
	}
}

func TestGenOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := Gen(-1)
	assert.Error(t, err)
	_, err = Gen(Max)
	assert.Error(t, err)
}

func TestLexicographicOrderEqualsSequenceOrder(t *testing.T) {
	t.Parallel()

	suffixes := make([]string, Max)
	for i := range suffixes {
		s, err := Gen(i)
		require.NoError(t, err)
		require.Len(t, s, Width)
		suffixes[i] = s
	}

	assert.True(t, sort.StringsAreSorted(suffixes),
		"suffix sequence must already be in lexicographic order for every part count")
}
