package compute

import (
	"context"
	"fmt"

	"healthcheck/pkg/column"
)

// Range is a whole-column range on the compute sheet, starting at the header row.
type Range struct {
	Column   int    `json:"column"`
	Row      int    `json:"row"`
	Selector string `json:"selector"`
}

func newRange(col, headerRow int) Range {
	return Range{Column: col, Row: headerRow, Selector: column.From(col, headerRow)}
}

// ChartSpec is one line chart: survey dates on the x-axis and one series per
// dimension on the page.
type ChartSpec struct {
	Title     string  `json:"title"`
	Sentiment string  `json:"sentiment"`
	Page      int     `json:"page"`
	XAxis     Range   `json:"xAxis"`
	Series    []Range `json:"series"`
}

// RangeList returns the x-axis range followed by the series ranges.
func (c ChartSpec) RangeList() []string {
	list := []string{c.XAxis.Selector}
	for _, r := range c.Series {
		list = append(list, r.Selector)
	}
	return list
}

// PartitionIntoCharts splits the dimensions into pages of LinesPerChart and
// returns one chart per page and sentiment, plotting stat.
func PartitionIntoCharts(l *Layout, stat Statistic) ([]ChartSpec, error) {
	cfg := l.Config
	pageSize := cfg.LinesPerChart
	dims := l.Dimensions()
	xAxis := newRange(cfg.DateColumn, cfg.HeaderRow)

	var charts []ChartSpec
	for start := 0; start < dims; start += pageSize {
		width := pageSize
		if dims-start < pageSize {
			width = dims % pageSize
		}
		page := 1 + start/pageSize
		for s, sentiment := range l.Sentiments() {
			columnStart := l.Position(start, s, stat)
			spec := ChartSpec{
				Title:     fmt.Sprintf("%s %d", sentiment.Name, page),
				Sentiment: sentiment.Name,
				Page:      page,
				XAxis:     xAxis,
			}
			for d := 0; d < width; d++ {
				spec.Series = append(spec.Series, newRange(columnStart+d*l.DimensionWidth(), cfg.HeaderRow))
			}
			// The x-axis counts against the renderer's series limit.
			if n := len(spec.Series) + 1; n > cfg.MaxChartSeries {
				return nil, fmt.Errorf("%w: expected at most %d, got %d", ErrTooManySeries, cfg.MaxChartSeries, n)
			}
			charts = append(charts, spec)
		}
	}
	return charts, nil
}

// ChartWriter renders chart specs against a compute sheet.
type ChartWriter interface {
	AddCharts(ctx context.Context, sheetName string, charts []ChartSpec) error
}
