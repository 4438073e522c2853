package sheets

import (
	"context"
	"strings"

	"healthcheck/pkg/compute"
)

// SheetWriter is the spreadsheet the health check reads surveys from and
// writes its compute table and charts to.
type SheetWriter interface {
	compute.TableWriter
	compute.ChartWriter
	SheetNames(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, name string) error
	ReadRange(ctx context.Context, a1 string) ([][]string, error)
	WriteValues(ctx context.Context, a1 string, rows [][]interface{}) error
	ClearRange(ctx context.Context, a1 string) error
}

// RangeName qualifies an A1 range with a quoted sheet name.
func RangeName(sheet, a1 string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + a1
}
