// Package xlsx writes health check compute sheets and charts to a local
// Excel workbook.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"healthcheck/pkg/column"
	"healthcheck/pkg/compute"
)

const defaultSheet = "Sheet1"

var markers = []string{"circle", "triangle", "square", "diamond", "star"}

// Workbook is an excelize file standing in for the spreadsheet.
type Workbook struct {
	// Layout places charts on sheets this workbook did not lay out itself.
	Layout compute.LayoutConfig

	file   *excelize.File
	path   string
	tables map[string]*compute.Table
	fresh  bool
}

// Open opens path, or starts an empty workbook when it does not exist yet.
func Open(path string) (*Workbook, error) {
	w := &Workbook{Layout: compute.DefaultLayoutConfig(), path: path, tables: map[string]*compute.Table{}}
	f, err := excelize.OpenFile(path)
	switch {
	case err == nil:
		w.file = f
	case os.IsNotExist(err):
		w.file = excelize.NewFile()
		w.fresh = true
	default:
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return w, nil
}

// New returns an empty in-memory workbook.
func New() *Workbook {
	return &Workbook{
		Layout: compute.DefaultLayoutConfig(),
		file:   excelize.NewFile(),
		tables: map[string]*compute.Table{},
		fresh:  true,
	}
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// Save writes the workbook back to the path it was opened from.
func (w *Workbook) Save() error {
	if w.path == "" {
		return fmt.Errorf("%w: workbook path", compute.ErrMissingValue)
	}
	w.dropPlaceholder()
	return w.file.SaveAs(w.path)
}

func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	w.dropPlaceholder()
	return w.file.WriteTo(out)
}

// dropPlaceholder removes the sheet excelize creates with a new file once
// something else exists.
func (w *Workbook) dropPlaceholder() {
	if !w.fresh || len(w.file.GetSheetList()) < 2 {
		return
	}
	if err := w.file.DeleteSheet(defaultSheet); err != nil {
		log.Debugf("Keeping %s: %v", defaultSheet, err)
	}
	w.fresh = false
}

func (w *Workbook) has(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (w *Workbook) SheetNames(context.Context) ([]string, error) {
	var names []string
	for _, name := range w.file.GetSheetList() {
		if w.fresh && name == defaultSheet {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (w *Workbook) AddSheet(_ context.Context, name string) error {
	if w.has(name) {
		return fmt.Errorf("%w: sheet %q already exists", compute.ErrInvalidInput, name)
	}
	_, err := w.file.NewSheet(name)
	return err
}

func (w *Workbook) ReadRange(_ context.Context, a1 string) ([][]string, error) {
	r, err := parseRange(a1)
	if err != nil {
		return nil, err
	}
	rows, err := w.file.GetRows(r.sheet)
	if err != nil {
		return nil, err
	}
	var out [][]string
	for i := r.top; i <= r.bottomOr(len(rows)) && i <= len(rows); i++ {
		row := rows[i-1]
		var cells []string
		for c := r.left; c <= r.rightOr(len(row)) && c <= len(row); c++ {
			cells = append(cells, row[c-1])
		}
		out = append(out, cells)
	}
	return out, nil
}

func (w *Workbook) WriteValues(_ context.Context, a1 string, rows [][]interface{}) error {
	r, err := parseRange(a1)
	if err != nil {
		return err
	}
	for i, row := range rows {
		for j, v := range row {
			cell := column.Cell(r.left+j, r.top+i)
			if f, ok := v.(string); ok && strings.HasPrefix(f, "=") {
				err = w.file.SetCellFormula(r.sheet, cell, excelFormula(f))
			} else {
				err = w.file.SetCellValue(r.sheet, cell, v)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Workbook) ClearRange(_ context.Context, a1 string) error {
	r, err := parseRange(a1)
	if err != nil {
		return err
	}
	rows, err := w.file.GetRows(r.sheet)
	if err != nil {
		return err
	}
	for i := r.top; i <= r.bottomOr(len(rows)) && i <= len(rows); i++ {
		for c := r.left; c <= r.rightOr(len(rows[i-1])); c++ {
			if err := w.file.SetCellValue(r.sheet, column.Cell(c, i), nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyTable writes the compute table to a new sheet. Every data row gets
// its own formulas since excelize cannot fill down.
func (w *Workbook) ApplyTable(ctx context.Context, sheetName string, t *compute.Table) error {
	if err := w.AddSheet(ctx, sheetName); err != nil {
		return err
	}
	cfg := t.Layout.Config
	f := w.file

	header1 := toRow(t.HeadersRow1)
	if err := f.SetSheetRow(sheetName, column.Cell(1, cfg.HeaderRow), &header1); err != nil {
		return err
	}
	header2 := toRow(t.HeadersRow2)
	if err := f.SetSheetRow(sheetName, column.Cell(1, cfg.SubheaderRow), &header2); err != nil {
		return err
	}
	for _, m := range t.Merges {
		if err := f.MergeCell(sheetName, column.Cell(m.Column, m.Row), column.Cell(m.Column+m.Width-1, m.Row)); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	last := t.Layout.TotalColumns()
	if err := f.SetCellStyle(sheetName, column.Cell(1, cfg.HeaderRow), column.Cell(last, cfg.SubheaderRow), bold); err != nil {
		return err
	}

	first := t.FormulaColumn()
	for row := cfg.DataStartRow; row <= cfg.Rows; row++ {
		formulas, err := t.FormulasForRow(row)
		if err != nil {
			return err
		}
		for i, formula := range formulas {
			if err := f.SetCellFormula(sheetName, column.Cell(first+i, row), excelFormula(formula)); err != nil {
				return err
			}
		}
	}

	styles := map[string]int{}
	for i, format := range append([]string{compute.DateFormat}, t.NumberFormats...) {
		col := first + i - 1
		if i == 0 {
			col = cfg.DateColumn
		}
		id, ok := styles[format]
		if !ok {
			numFmt := format
			if id, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
				return err
			}
			styles[format] = id
		}
		if err := f.SetCellStyle(sheetName, column.Cell(col, cfg.DataStartRow), column.Cell(col, cfg.Rows), id); err != nil {
			return err
		}
	}

	for i, width := range t.ColumnWidths {
		label := column.MustLabel(i + 1)
		// Sheets widths are pixels, excel widths are characters.
		if err := f.SetColWidth(sheetName, label, label, float64(width)/7); err != nil {
			return err
		}
	}

	err = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      cfg.CountColumn,
		YSplit:      cfg.DataStartRow - 1,
		TopLeftCell: column.Cell(cfg.CountColumn+1, cfg.DataStartRow),
		ActivePane:  "bottomRight",
	})
	if err != nil {
		return err
	}
	w.tables[sheetName] = t
	log.Debugf("Wrote compute table to %q (%d rows)", sheetName, cfg.Rows-cfg.DataStartRow+1)
	return nil
}

// AddCharts adds one line chart sheet per ChartSpec, named after its title.
// Charts of a sheet written by ApplyTable follow its layout; otherwise
// w.Layout applies.
func (w *Workbook) AddCharts(_ context.Context, sheetName string, charts []compute.ChartSpec) error {
	if !w.has(sheetName) {
		return fmt.Errorf("%w: sheet %q", compute.ErrMissingValue, sheetName)
	}
	cfg := w.Layout
	if t, ok := w.tables[sheetName]; ok {
		cfg = t.Layout.Config
	}
	for _, c := range charts {
		chart, err := lineChart(sheetName, c, cfg)
		if err != nil {
			return err
		}
		if err := w.file.AddChartSheet(c.Title, chart); err != nil {
			return fmt.Errorf("adding chart %q: %w", c.Title, err)
		}
	}
	return nil
}

// lineChart plots the data rows of each series against the x-axis, naming
// series after the merged header of their statistic pair.
func lineChart(sheetName string, c compute.ChartSpec, cfg compute.LayoutConfig) (*excelize.Chart, error) {
	chart := &excelize.Chart{
		Type:   excelize.Line,
		Title:  []excelize.RichTextRun{{Text: c.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	categories, err := absolute(sheetName, c.XAxis.Column, cfg.DataStartRow, cfg.Rows)
	if err != nil {
		return nil, err
	}
	for i, r := range c.Series {
		nameCol := r.Column - (r.Column-cfg.DimensionsStartColumn)%2
		name, err := absolute(sheetName, nameCol, r.Row, r.Row)
		if err != nil {
			return nil, err
		}
		values, err := absolute(sheetName, r.Column, cfg.DataStartRow, cfg.Rows)
		if err != nil {
			return nil, err
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       name,
			Categories: categories,
			Values:     values,
			Marker:     excelize.ChartMarker{Symbol: markers[i%len(markers)]},
		})
	}
	return chart, nil
}

func absolute(sheet string, col, top, bottom int) (string, error) {
	ref, err := excelize.CoordinatesToCellName(col, top, true)
	if err != nil {
		return "", err
	}
	if bottom != top {
		end, err := excelize.CoordinatesToCellName(col, bottom, true)
		if err != nil {
			return "", err
		}
		ref += ":" + end
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + ref, nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
