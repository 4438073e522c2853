package compute

import (
	"fmt"
	"strings"
)

// LayoutConfig pins the fixed geometry shared by the table builder, the
// formula generator and the chart partitioner. Columns and rows are 1-based.
type LayoutConfig struct {
	NameColumn            int `toml:"name_column" yaml:"name_column" json:"nameColumn"`
	DateColumn            int `toml:"date_column" yaml:"date_column" json:"dateColumn"`
	CountColumn           int `toml:"count_column" yaml:"count_column" json:"countColumn"`
	DimensionsStartColumn int `toml:"dimensions_start_column" yaml:"dimensions_start_column" json:"dimensionsStartColumn"`
	HeaderRow             int `toml:"header_row" yaml:"header_row" json:"headerRow"`
	SubheaderRow          int `toml:"subheader_row" yaml:"subheader_row" json:"subheaderRow"`
	DataStartRow          int `toml:"data_start_row" yaml:"data_start_row" json:"dataStartRow"`
	Rows                  int `toml:"rows" yaml:"rows" json:"rows"`

	// Columns of a survey response sheet.
	ResponseEmailColumn       int `toml:"response_email_column" yaml:"response_email_column" json:"responseEmailColumn"`
	ResponseAnswerStartColumn int `toml:"response_answer_start_column" yaml:"response_answer_start_column" json:"responseAnswerStartColumn"`

	LinesPerChart  int `toml:"lines_per_chart" yaml:"lines_per_chart" json:"linesPerChart"`
	MaxChartSeries int `toml:"max_chart_series" yaml:"max_chart_series" json:"maxChartSeries"`
}

// DefaultLayoutConfig is the compute sheet arrangement:
//
//	| Survey name | Date | # | Dimension: Sentiment A | Dimension: Sentiment B | ...
//	|             |      |   | Avg  | SD              | Avg  | SD              | ...
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		NameColumn:                1,
		DateColumn:                2,
		CountColumn:               3,
		DimensionsStartColumn:     4,
		HeaderRow:                 1,
		SubheaderRow:              2,
		DataStartRow:              3,
		Rows:                      1000,
		ResponseEmailColumn:       2,
		ResponseAnswerStartColumn: 3,
		LinesPerChart:             4,
		MaxChartSeries:            5,
	}
}

func (c LayoutConfig) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"name_column", c.NameColumn},
		{"date_column", c.DateColumn},
		{"count_column", c.CountColumn},
		{"dimensions_start_column", c.DimensionsStartColumn},
		{"header_row", c.HeaderRow},
		{"subheader_row", c.SubheaderRow},
		{"data_start_row", c.DataStartRow},
		{"rows", c.Rows},
		{"response_email_column", c.ResponseEmailColumn},
		{"response_answer_start_column", c.ResponseAnswerStartColumn},
		{"lines_per_chart", c.LinesPerChart},
		{"max_chart_series", c.MaxChartSeries},
	}
	for _, f := range fields {
		if f.value < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidInput, f.name, f.value)
		}
	}
	if c.DimensionsStartColumn <= c.CountColumn {
		return fmt.Errorf("%w: dimensions must start after the respondent count column", ErrInvalidInput)
	}
	if c.DataStartRow <= c.SubheaderRow || c.Rows < c.DataStartRow {
		return fmt.Errorf("%w: data rows must follow the header rows", ErrInvalidInput)
	}
	return nil
}

// Labels are a sentiment's responses ranked from most to least positive.
type Labels [3]string

// Sentiment is one axis of measurement for every dimension.
type Sentiment struct {
	Name   string   `toml:"name" yaml:"name" json:"name"`
	Labels []string `toml:"labels" yaml:"labels" json:"labels"`
}

// Ranked validates the sentiment's labels.
func (s Sentiment) Ranked() (Labels, error) {
	var ranked Labels
	if strings.TrimSpace(s.Name) == "" {
		return ranked, fmt.Errorf("%w: sentiment without a name", ErrInvalidInput)
	}
	if len(s.Labels) != len(ranked) {
		return ranked, fmt.Errorf("%w: sentiment %q needs %d labels, got %d", ErrInvalidInput, s.Name, len(ranked), len(s.Labels))
	}
	seen := make(map[string]bool)
	for i, l := range s.Labels {
		if l == "" || seen[l] {
			return ranked, fmt.Errorf("%w: sentiment %q has a blank or repeated label %q", ErrInvalidInput, s.Name, l)
		}
		seen[l] = true
		ranked[i] = l
	}
	return ranked, nil
}

// Statistic is an aggregate computed per dimension and sentiment.
type Statistic int

const (
	Average Statistic = iota
	StandardDeviation
)

// Statistics returns every statistic in column order.
func Statistics() []Statistic {
	return []Statistic{Average, StandardDeviation}
}

// Function is the spreadsheet function computing the statistic.
func (s Statistic) Function() string {
	switch s {
	case Average:
		return "AVERAGE"
	case StandardDeviation:
		return "STDEV.P"
	}
	return ""
}

// Label is the statistic's subheader.
func (s Statistic) Label() string {
	switch s {
	case Average:
		return "Avg"
	case StandardDeviation:
		return "SD"
	}
	return ""
}

func (s Statistic) String() string {
	switch s {
	case Average:
		return "Average"
	case StandardDeviation:
		return "Standard deviation"
	}
	return fmt.Sprintf("Statistic(%d)", int(s))
}

// Layout is the column geometry of one compute table.
type Layout struct {
	Config     LayoutConfig
	dimensions int
	sentiments []Sentiment
	labels     []Labels
}

// NewLayout computes the geometry for dimensionCount dimensions. A nil count
// fails fast instead of defaulting.
func NewLayout(cfg LayoutConfig, dimensionCount *int, sentiments []Sentiment) (*Layout, error) {
	count, err := Unwrap(dimensionCount, "dimension count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: dimension count %d", ErrInvalidInput, count)
	}
	if len(sentiments) == 0 {
		return nil, fmt.Errorf("%w: sentiments", ErrMissingValue)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Layout{
		Config:     cfg,
		dimensions: count,
		sentiments: append([]Sentiment(nil), sentiments...),
		labels:     make([]Labels, len(sentiments)),
	}
	names := make(map[string]bool)
	for i, s := range sentiments {
		if names[s.Name] {
			return nil, fmt.Errorf("%w: duplicate sentiment %q", ErrInvalidInput, s.Name)
		}
		names[s.Name] = true
		if l.labels[i], err = s.Ranked(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Layout) Dimensions() int {
	return l.dimensions
}

func (l *Layout) Sentiments() []Sentiment {
	return l.sentiments
}

// Labels returns the ranked labels of the sentiment at index s.
func (l *Layout) Labels(s int) Labels {
	return l.labels[s]
}

// DimensionWidth is the number of columns each dimension spans.
func (l *Layout) DimensionWidth() int {
	return len(l.sentiments) * len(Statistics())
}

// TotalColumns counts the fixed leading columns plus every statistic column.
func (l *Layout) TotalColumns() int {
	return l.Config.DimensionsStartColumn - 1 + l.dimensions*l.DimensionWidth()
}

// Position is the compute sheet column of statistic t of sentiment s of
// dimension d, with d and s 0-based.
func (l *Layout) Position(d, s int, t Statistic) int {
	return l.Config.DimensionsStartColumn + d*l.DimensionWidth() + s*len(Statistics()) + int(t)
}

// SourceColumn is the response sheet column holding the answers for
// sentiment s of dimension d.
func (l *Layout) SourceColumn(d, s int) int {
	return l.Config.ResponseAnswerStartColumn + d*len(l.sentiments) + s
}

// Merge is a header cell spanning Width columns.
type Merge struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	Width  int `json:"width"`
}

// Merges returns one header merge per dimension and sentiment.
func (l *Layout) Merges() []Merge {
	var merges []Merge
	for d := 0; d < l.dimensions; d++ {
		for s := range l.sentiments {
			merges = append(merges, Merge{
				Row:    l.Config.HeaderRow,
				Column: l.Position(d, s, Average),
				Width:  len(Statistics()),
			})
		}
	}
	return merges
}
