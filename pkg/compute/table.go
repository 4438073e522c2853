package compute

import (
	"context"
	"fmt"
)

const (
	CountFormat     = "0"
	StatisticFormat = "0.00"
	DateFormat      = "yyyy-MM-dd"
)

// Fixed leading headers, in column order.
var leadingHeaders = []string{"Survey name", "Date", "#"}

// BuildFormulaSequence returns the formulas of one compute row starting at
// the respondent count column: the count, then for each dimension, for each
// sentiment, the average and standard deviation.
func BuildFormulaSequence(l *Layout, row int) ([]string, error) {
	fb := FormulaBuilder{Config: l.Config, Row: row}
	formulas := make([]string, 0, 1+l.Dimensions()*l.DimensionWidth())
	formulas = append(formulas, fb.RespondentCount())
	for d := 0; d < l.Dimensions(); d++ {
		for s := range l.Sentiments() {
			pair, err := fb.StatFormulaPair(l.SourceColumn(d, s), l.Labels(s))
			if err != nil {
				return nil, err
			}
			formulas = append(formulas, pair[:]...)
		}
	}
	return formulas, nil
}

// Table is everything a writer needs to lay out a compute sheet.
type Table struct {
	Layout *Layout `json:"-"`

	HeadersRow1   []string `json:"headersRow1"`
	HeadersRow2   []string `json:"headersRow2"`
	Formulas      []string `json:"formulas"`
	NumberFormats []string `json:"numberFormats"`
	Merges        []Merge  `json:"merges"`
	ColumnWidths  []int    `json:"columnWidths"`
}

// BuildTable builds headers, formulas and formats for the named dimensions.
func BuildTable(l *Layout, dimensionNames []string) (*Table, error) {
	if len(dimensionNames) != l.Dimensions() {
		return nil, fmt.Errorf("%w: %d dimension names for %d dimensions", ErrLayoutMismatch, len(dimensionNames), l.Dimensions())
	}
	cfg := l.Config
	total := l.TotalColumns()
	t := &Table{
		Layout:      l,
		HeadersRow1: make([]string, total),
		HeadersRow2: make([]string, total),
		Merges:      l.Merges(),
	}
	for i, h := range leadingHeaders {
		col := cfg.NameColumn + i
		if col >= cfg.DimensionsStartColumn {
			break
		}
		t.HeadersRow1[col-1] = h
	}
	for d, name := range dimensionNames {
		for s, sentiment := range l.Sentiments() {
			t.HeadersRow1[l.Position(d, s, Average)-1] = name + ": " + sentiment.Name
			for _, stat := range Statistics() {
				t.HeadersRow2[l.Position(d, s, stat)-1] = stat.Label()
			}
		}
	}

	var err error
	if t.Formulas, err = BuildFormulaSequence(l, cfg.DataStartRow); err != nil {
		return nil, err
	}
	t.NumberFormats = make([]string, len(t.Formulas))
	t.NumberFormats[0] = CountFormat
	for i := 1; i < len(t.NumberFormats); i++ {
		t.NumberFormats[i] = StatisticFormat
	}

	// Narrow statistic columns, wider name and date columns.
	t.ColumnWidths = make([]int, total)
	for i := range t.ColumnWidths {
		t.ColumnWidths[i] = 40
	}
	t.ColumnWidths[cfg.NameColumn-1] = 200
	t.ColumnWidths[cfg.DateColumn-1] = 100
	return t, nil
}

// FormulaColumn is the column of the first formula.
func (t *Table) FormulaColumn() int {
	return t.Layout.Config.CountColumn
}

// FormulasForRow re-resolves the row's formulas so each row reads its own
// survey name. Used by writers that cannot fill down.
func (t *Table) FormulasForRow(row int) ([]string, error) {
	if row == t.Layout.Config.DataStartRow {
		return t.Formulas, nil
	}
	return BuildFormulaSequence(t.Layout, row)
}

// TableWriter writes a compute table to a sheet.
type TableWriter interface {
	ApplyTable(ctx context.Context, sheetName string, t *Table) error
}

// Apply writes the table to sheetName through w.
func (t *Table) Apply(ctx context.Context, w TableWriter, sheetName string) error {
	if sheetName == "" {
		return fmt.Errorf("%w: compute sheet name", ErrMissingValue)
	}
	return w.ApplyTable(ctx, sheetName, t)
}
