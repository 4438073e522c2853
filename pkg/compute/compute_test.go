package compute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSentiments = []Sentiment{
	{Name: "Perception", Labels: []string{"Good", "Neutral", "Bad"}},
	{Name: "Trend", Labels: []string{"Improving", "Stable", "Deteriorating"}},
}

func newTestLayout(t *testing.T, dims int) *Layout {
	t.Helper()
	l, err := NewLayout(DefaultLayoutConfig(), IntPtr(dims), testSentiments)
	require.NoError(t, err)
	return l
}

func TestNewLayoutErrors(t *testing.T) {
	tests := []struct {
		name       string
		count      *int
		sentiments []Sentiment
		cfg        func(*LayoutConfig)
		want       error
	}{
		{name: "missing count", count: nil, sentiments: testSentiments, want: ErrMissingValue},
		{name: "negative count", count: IntPtr(-1), sentiments: testSentiments, want: ErrInvalidInput},
		{name: "no sentiments", count: IntPtr(2), want: ErrMissingValue},
		{
			name:       "two labels",
			count:      IntPtr(2),
			sentiments: []Sentiment{{Name: "Perception", Labels: []string{"Good", "Bad"}}},
			want:       ErrInvalidInput,
		},
		{
			name:       "repeated label",
			count:      IntPtr(2),
			sentiments: []Sentiment{{Name: "Perception", Labels: []string{"Good", "Good", "Bad"}}},
			want:       ErrInvalidInput,
		},
		{
			name:       "duplicate sentiment",
			count:      IntPtr(2),
			sentiments: []Sentiment{testSentiments[0], testSentiments[0]},
			want:       ErrInvalidInput,
		},
		{
			name:       "bad geometry",
			count:      IntPtr(2),
			sentiments: testSentiments,
			cfg:        func(c *LayoutConfig) { c.DimensionsStartColumn = 3 },
			want:       ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLayoutConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			_, err := NewLayout(cfg, tt.count, tt.sentiments)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestLayoutGeometry(t *testing.T) {
	l := newTestLayout(t, 11)
	assert.Equal(t, 4, l.DimensionWidth())
	assert.Equal(t, 47, l.TotalColumns())

	positions := []struct {
		d, s int
		t    Statistic
		want int
	}{
		{0, 0, Average, 4},
		{0, 0, StandardDeviation, 5},
		{0, 1, Average, 6},
		{0, 1, StandardDeviation, 7},
		{1, 0, Average, 8},
		{10, 1, StandardDeviation, 47},
	}
	for _, p := range positions {
		if got := l.Position(p.d, p.s, p.t); got != p.want {
			t.Errorf("Position(%d, %d, %v) = %d, want %d", p.d, p.s, p.t, got, p.want)
		}
	}
	assert.Equal(t, 3, l.SourceColumn(0, 0))
	assert.Equal(t, 4, l.SourceColumn(0, 1))
	assert.Equal(t, 5, l.SourceColumn(1, 0))
	assert.Equal(t, 24, l.SourceColumn(10, 1))

	merges := l.Merges()
	require.Len(t, merges, 22)
	assert.Equal(t, Merge{Row: 1, Column: 4, Width: 2}, merges[0])
	assert.Equal(t, Merge{Row: 1, Column: 46, Width: 2}, merges[21])
}

func TestLayoutZeroDimensions(t *testing.T) {
	l := newTestLayout(t, 0)
	assert.Equal(t, 3, l.TotalColumns())
	assert.Empty(t, l.Merges())
}

func TestStatistics(t *testing.T) {
	assert.Equal(t, []Statistic{Average, StandardDeviation}, Statistics())
	assert.Equal(t, "AVERAGE", Average.Function())
	assert.Equal(t, "STDEV.P", StandardDeviation.Function())
	assert.Equal(t, "Avg", Average.Label())
	assert.Equal(t, "SD", StandardDeviation.Label())
	assert.Equal(t, "Statistic(7)", Statistic(7).String())
}

func TestUnwrap(t *testing.T) {
	v, err := Unwrap(IntPtr(4), "count")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = Unwrap[int](nil, "count")
	assert.ErrorIs(t, err, ErrMissingValue)
	assert.EqualError(t, err, "unexpected null value: count")
}
