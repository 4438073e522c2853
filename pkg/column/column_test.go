package column

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		got, err := ToLabel(tt.index)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ToLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestToLabelInvalid(t *testing.T) {
	for _, index := range []int{0, -1, -27} {
		_, err := ToLabel(index)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "index %d", index)
	}
}

func TestRoundTrip(t *testing.T) {
	seen := make(map[string]int)
	for i := 1; i <= 52; i++ {
		label, err := ToLabel(i)
		require.NoError(t, err)
		if prev, ok := seen[label]; ok {
			t.Fatalf("ToLabel(%d) and ToLabel(%d) both produced %q", prev, i, label)
		}
		seen[label] = i
		back, err := ToIndex(label)
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}
}

func TestToIndex(t *testing.T) {
	got, err := ToIndex("az")
	require.NoError(t, err)
	assert.Equal(t, 52, got)

	for _, bad := range []string{"", "A1", "-", "Ä"} {
		_, err := ToIndex(bad)
		assert.Error(t, err, bad)
	}
}

func TestSelectors(t *testing.T) {
	assert.Equal(t, "C:C", Span(3))
	assert.Equal(t, "B1:B", From(2, 1))
	assert.Equal(t, "AB3", Cell(28, 3))
	assert.Panics(t, func() { MustLabel(0) })
}
