package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"healthcheck/pkg/compute"
)

var testSentiments = []compute.Sentiment{
	{Name: "Perception", Labels: []string{"Good", "Neutral", "Bad"}},
	{Name: "Trend", Labels: []string{"Improving", "Stable", "Deteriorating"}},
}

func testTable(t *testing.T, dims int) *compute.Table {
	t.Helper()
	l, err := compute.NewLayout(compute.DefaultLayoutConfig(), compute.IntPtr(dims), testSentiments)
	require.NoError(t, err)
	names := make([]string, dims)
	for i := range names {
		names[i] = "Dim" + string(rune('A'+i))
	}
	tbl, err := compute.BuildTable(l, names)
	require.NoError(t, err)
	return tbl
}

func TestRangeName(t *testing.T) {
	assert.Equal(t, "'Compute'!A1:B2", RangeName("Compute", "A1:B2"))
	assert.Equal(t, "'Bob''s'!A:A", RangeName("Bob's", "A:A"))
}

func TestGridRange(t *testing.T) {
	gr := gridRange(7, 3, 2, 1, 4)
	assert.Equal(t, int64(7), gr.SheetId)
	assert.Equal(t, int64(2), gr.StartRowIndex)
	assert.Equal(t, int64(3), gr.EndRowIndex)
	assert.Equal(t, int64(1), gr.StartColumnIndex)
	assert.Equal(t, int64(5), gr.EndColumnIndex)

	open := gridRange(7, 1, 2, 0, 1)
	assert.Zero(t, open.EndRowIndex)
	assert.Equal(t, int64(2), open.EndColumnIndex)
}

func TestTableValues(t *testing.T) {
	tbl := testTable(t, 2)
	values := tableValues("Compute", tbl)
	require.Len(t, values, 3)
	assert.Equal(t, "'Compute'!A1", values[0].Range)
	assert.Equal(t, "'Compute'!A2", values[1].Range)
	assert.Equal(t, "'Compute'!C3", values[2].Range)
	assert.Len(t, values[0].Values[0], tbl.Layout.TotalColumns())
	assert.Len(t, values[2].Values[0], len(tbl.Formulas))
	assert.Equal(t, tbl.Formulas[0], values[2].Values[0][0])
}

func TestTableRequests(t *testing.T) {
	tbl := testTable(t, 2)
	requests := tableRequests(42, "Compute", tbl)

	var merges, autofills, protections int
	for _, r := range requests {
		switch {
		case r.MergeCells != nil:
			merges++
			assert.Equal(t, "MERGE_ALL", r.MergeCells.MergeType)
			assert.Equal(t, int64(2), r.MergeCells.Range.EndColumnIndex-r.MergeCells.Range.StartColumnIndex)
		case r.AutoFill != nil:
			autofills++
			sd := r.AutoFill.SourceAndDestination
			assert.Equal(t, "ROWS", sd.Dimension)
			assert.Equal(t, int64(997), sd.FillLength)
			assert.Equal(t, int64(2), sd.Source.StartRowIndex)
			assert.Equal(t, int64(len(tbl.Formulas)), sd.Source.EndColumnIndex-sd.Source.StartColumnIndex)
		case r.AddProtectedRange != nil:
			protections++
			assert.True(t, r.AddProtectedRange.ProtectedRange.WarningOnly)
		}
	}
	assert.Equal(t, len(tbl.Merges), merges)
	assert.Equal(t, 1, autofills)
	assert.Equal(t, 1, protections)
}

func TestTableRequestsNumberFormats(t *testing.T) {
	tbl := testTable(t, 1)
	var patterns []string
	for _, r := range tableRequests(1, "Compute", tbl) {
		if r.RepeatCell != nil && r.RepeatCell.Cell.UserEnteredFormat.NumberFormat != nil {
			patterns = append(patterns, r.RepeatCell.Cell.UserEnteredFormat.NumberFormat.Pattern)
		}
	}
	assert.Equal(t, []string{compute.CountFormat, compute.StatisticFormat, compute.DateFormat}, patterns)
}

func TestChartRequest(t *testing.T) {
	tbl := testTable(t, 3)
	charts, err := compute.PartitionIntoCharts(tbl.Layout, compute.Average)
	require.NoError(t, err)
	require.Len(t, charts, 2)

	req := chartRequest(9, charts[0])
	require.NotNil(t, req.AddChart)
	spec := req.AddChart.Chart.Spec
	assert.Equal(t, "Perception 1", spec.Title)
	assert.True(t, req.AddChart.Chart.Position.NewSheet)
	assert.Equal(t, "LINE", spec.BasicChart.ChartType)
	assert.Equal(t, int64(1), spec.BasicChart.HeaderCount)

	domain := spec.BasicChart.Domains[0].Domain.SourceRange.Sources[0]
	assert.Equal(t, int64(1), domain.StartColumnIndex)
	assert.Equal(t, int64(0), domain.StartRowIndex)

	require.Len(t, spec.BasicChart.Series, 3)
	for i, s := range spec.BasicChart.Series {
		src := s.Series.SourceRange.Sources[0]
		assert.Equal(t, int64(charts[0].Series[i].Column-1), src.StartColumnIndex)
		assert.Equal(t, pointShapes[i], s.PointStyle.Shape)
	}
}

func TestChartSheetRequests(t *testing.T) {
	requests := chartSheetRequests(5, "Trend 2")
	require.Len(t, requests, 2)
	assert.Equal(t, "Trend 2", requests[0].UpdateSheetProperties.Properties.Title)
	assert.Equal(t, int64(5), requests[1].AddProtectedRange.ProtectedRange.Range.SheetId)
}

func TestWithRetry(t *testing.T) {
	old := baseBackoff
	baseBackoff = time.Millisecond
	defer func() { baseBackoff = old }()

	tests := []struct {
		name    string
		errs    []error
		calls   int
		wantErr bool
	}{
		{"success", nil, 1, false},
		{"rate limited then ok", []error{&googleapi.Error{Code: 429}, &googleapi.Error{Code: 403}}, 3, false},
		{"other error", []error{&googleapi.Error{Code: 500}}, 1, true},
		{"plain error", []error{errors.New("boom")}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := withRetry(context.Background(), "test", func() error {
				calls++
				if calls <= len(tt.errs) {
					return tt.errs[calls-1]
				}
				return nil
			})
			assert.Equal(t, tt.calls, calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, "test", func() error { return &googleapi.Error{Code: 429} })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSheetClientRequiresSpreadsheet(t *testing.T) {
	_, err := NewSheetClient(context.Background(), "", "")
	assert.ErrorIs(t, err, compute.ErrMissingValue)
}
