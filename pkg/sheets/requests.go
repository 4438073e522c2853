package sheets

import (
	"fmt"

	"google.golang.org/api/sheets/v4"

	"healthcheck/pkg/column"
	"healthcheck/pkg/compute"
)

// Point shapes for successive chart series.
var pointShapes = []string{"CIRCLE", "TRIANGLE", "SQUARE", "DIAMOND", "STAR"}

// gridRange converts a 1-based block to a GridRange. rows or cols of 0
// leave that end unbounded.
func gridRange(sheetID int64, row, col, rows, cols int) *sheets.GridRange {
	gr := &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(row - 1),
		StartColumnIndex: int64(col - 1),
	}
	if rows > 0 {
		gr.EndRowIndex = int64(row - 1 + rows)
	}
	if cols > 0 {
		gr.EndColumnIndex = int64(col - 1 + cols)
	}
	return gr
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func tableValues(sheetName string, t *compute.Table) []*sheets.ValueRange {
	cfg := t.Layout.Config
	return []*sheets.ValueRange{
		{
			Range:  RangeName(sheetName, column.Cell(1, cfg.HeaderRow)),
			Values: [][]interface{}{toRow(t.HeadersRow1)},
		},
		{
			Range:  RangeName(sheetName, column.Cell(1, cfg.SubheaderRow)),
			Values: [][]interface{}{toRow(t.HeadersRow2)},
		},
		{
			Range:  RangeName(sheetName, column.Cell(t.FormulaColumn(), cfg.DataStartRow)),
			Values: [][]interface{}{toRow(t.Formulas)},
		},
	}
}

func numberFormat(kind, pattern string, gr *sheets.GridRange) *sheets.Request {
	return &sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
		Range: gr,
		Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
			NumberFormat:        &sheets.NumberFormat{Type: kind, Pattern: pattern},
			HorizontalAlignment: "RIGHT",
		}},
		Fields: "userEnteredFormat(numberFormat,horizontalAlignment)",
	}}
}

// tableRequests merges and formats the headers, formats the data columns,
// fills the first formula row down the sheet, sizes columns and protects
// the sheet.
func tableRequests(sheetID int64, sheetName string, t *compute.Table) []*sheets.Request {
	cfg := t.Layout.Config
	dataRows := cfg.Rows - cfg.DataStartRow + 1
	var requests []*sheets.Request

	for _, m := range t.Merges {
		requests = append(requests, &sheets.Request{MergeCells: &sheets.MergeCellsRequest{
			Range:     gridRange(sheetID, m.Row, m.Column, 1, m.Width),
			MergeType: "MERGE_ALL",
		}})
	}
	requests = append(requests, &sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
		Range:  gridRange(sheetID, cfg.HeaderRow, 1, cfg.SubheaderRow-cfg.HeaderRow+1, len(t.HeadersRow1)),
		Cell:   &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{WrapStrategy: "WRAP", TextFormat: &sheets.TextFormat{Bold: true}}},
		Fields: "userEnteredFormat(wrapStrategy,textFormat.bold)",
	}})

	// Runs of equal number formats share one request.
	start := 0
	for i := 1; i <= len(t.NumberFormats); i++ {
		if i < len(t.NumberFormats) && t.NumberFormats[i] == t.NumberFormats[start] {
			continue
		}
		requests = append(requests, numberFormat("NUMBER", t.NumberFormats[start],
			gridRange(sheetID, cfg.DataStartRow, t.FormulaColumn()+start, dataRows, i-start)))
		start = i
	}
	requests = append(requests, numberFormat("DATE", compute.DateFormat,
		gridRange(sheetID, cfg.DataStartRow, cfg.DateColumn, dataRows, 1)))

	if dataRows > 1 {
		requests = append(requests, &sheets.Request{AutoFill: &sheets.AutoFillRequest{
			SourceAndDestination: &sheets.SourceAndDestination{
				Source:     gridRange(sheetID, cfg.DataStartRow, t.FormulaColumn(), 1, len(t.Formulas)),
				Dimension:  "ROWS",
				FillLength: int64(dataRows - 1),
			},
		}})
	}

	start = 0
	for i := 1; i <= len(t.ColumnWidths); i++ {
		if i < len(t.ColumnWidths) && t.ColumnWidths[i] == t.ColumnWidths[start] {
			continue
		}
		requests = append(requests, &sheets.Request{UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: int64(start),
				EndIndex:   int64(i),
			},
			Properties: &sheets.DimensionProperties{PixelSize: int64(t.ColumnWidths[start])},
			Fields:     "pixelSize",
		}})
		start = i
	}

	requests = append(requests, protect(sheetID, sheetName))
	return requests
}

func protect(sheetID int64, name string) *sheets.Request {
	return &sheets.Request{AddProtectedRange: &sheets.AddProtectedRangeRequest{
		ProtectedRange: &sheets.ProtectedRange{
			Range:       &sheets.GridRange{SheetId: sheetID},
			Description: fmt.Sprintf("Protect %q against accidental modification", name),
			WarningOnly: true,
		},
	}}
}

func columnData(sheetID int64, r compute.Range) *sheets.ChartData {
	return &sheets.ChartData{SourceRange: &sheets.ChartSourceRange{
		Sources: []*sheets.GridRange{gridRange(sheetID, r.Row, r.Column, 0, 1)},
	}}
}

func chartRequest(sheetID int64, c compute.ChartSpec) *sheets.Request {
	basic := &sheets.BasicChartSpec{
		ChartType:      "LINE",
		HeaderCount:    1,
		LegendPosition: "BOTTOM_LEGEND",
		Domains:        []*sheets.BasicChartDomain{{Domain: columnData(sheetID, c.XAxis)}},
	}
	for i, r := range c.Series {
		basic.Series = append(basic.Series, &sheets.BasicChartSeries{
			Series:     columnData(sheetID, r),
			TargetAxis: "LEFT_AXIS",
			PointStyle: &sheets.PointStyle{Shape: pointShapes[i%len(pointShapes)], Size: 10},
		})
	}
	return &sheets.Request{AddChart: &sheets.AddChartRequest{
		Chart: &sheets.EmbeddedChart{
			Spec: &sheets.ChartSpec{
				Title:      c.Title,
				BasicChart: basic,
			},
			Position: &sheets.EmbeddedObjectPosition{NewSheet: true},
		},
	}}
}

// chartSheetRequests names a new chart sheet and protects it.
func chartSheetRequests(sheetID int64, title string) []*sheets.Request {
	return []*sheets.Request{
		{UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{SheetId: sheetID, Title: title},
			Fields:     "title",
		}},
		protect(sheetID, title),
	}
}
