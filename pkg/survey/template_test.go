package survey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcheck/pkg/compute"
)

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	assert.Equal(t, 11, tmpl.Count())
	names := tmpl.DimensionNames()
	assert.Equal(t, "Delivering value", names[0])
	assert.Equal(t, "Teamwork", names[10])

	rows := [][]string{Header}
	for _, d := range tmpl.Dimensions {
		rows = append(rows, []string{d.Name, d.Good, d.Bad, d.IconURL})
	}
	assert.NoError(t, Check(rows))
}

func TestDefaultSentiments(t *testing.T) {
	sentiments := DefaultSentiments()
	require.Len(t, sentiments, 2)
	assert.Equal(t, "Perception", sentiments[0].Name)
	assert.Equal(t, "Trend", sentiments[1].Name)
	for _, s := range sentiments {
		_, err := s.Ranked()
		assert.NoError(t, err)
	}

	// The default template and sentiments must produce a valid layout.
	_, err := compute.NewLayout(compute.DefaultLayoutConfig(), compute.IntPtr(DefaultTemplate().Count()), sentiments)
	assert.NoError(t, err)
}

func TestCheck(t *testing.T) {
	good := []string{"Fun", "yay", "boo", "https://example.com/fun.png"}
	tests := []struct {
		name    string
		rows    [][]string
		wantErr bool
	}{
		{"valid", [][]string{Header, good}, false},
		{"empty", nil, true},
		{"header only", [][]string{Header}, true},
		{"wrong header", [][]string{{"Dimension", "Good", "Bad", "Icon"}, good}, true},
		{"blank field", [][]string{Header, {"Fun", "", "boo", "x"}}, true},
		{"short row", [][]string{Header, {"Fun", "yay"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.rows)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrTemplate), "got %v", err)
		})
	}
}

func TestFromRows(t *testing.T) {
	tmpl, err := FromRows("desc", [][]string{
		Header,
		{"Fun", "yay", "boo", "https://example.com/fun.png"},
		{"Speed", "fast", "slow", "https://example.com/speed.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fun", "Speed"}, tmpl.DimensionNames())
	assert.Equal(t, "desc", tmpl.Description)
	assert.Equal(t, []interface{}{"Speed", "fast", "slow", "https://example.com/speed.png"}, tmpl.Dimensions[1].Row())

	_, err = FromRows("desc", [][]string{Header})
	assert.ErrorIs(t, err, ErrTemplate)
}
