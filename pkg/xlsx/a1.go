package xlsx

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"healthcheck/pkg/compute"
)

// a1Range is a parsed A1 range. Zero bounds are open.
type a1Range struct {
	sheet         string
	left, top     int
	right, bottom int
}

func (r a1Range) bottomOr(n int) int {
	if r.bottom == 0 {
		return n
	}
	return r.bottom
}

func (r a1Range) rightOr(n int) int {
	if r.right == 0 {
		return n
	}
	return r.right
}

func unquote(sheet string) string {
	if len(sheet) > 1 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		return strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet
}

// parseRange reads 'Sheet'!A1:B2 style ranges, including open ones such as
// A3:B and C:C. A bare sheet name is the whole sheet.
func parseRange(a1 string) (a1Range, error) {
	var r a1Range
	i := strings.LastIndex(a1, "!")
	if i < 0 {
		if a1 == "" {
			return r, fmt.Errorf("%w: empty range", compute.ErrInvalidInput)
		}
		return a1Range{sheet: unquote(a1), left: 1, top: 1}, nil
	}
	r.sheet = unquote(a1[:i])

	from, to, isSpan := strings.Cut(a1[i+1:], ":")
	var err error
	if r.left, r.top, err = parseCell(from); err != nil {
		return r, fmt.Errorf("%w: range %q", err, a1)
	}
	if r.top == 0 {
		r.top = 1
	}
	if !isSpan {
		r.right, r.bottom = r.left, r.top
		return r, nil
	}
	if r.right, r.bottom, err = parseCell(to); err != nil {
		return r, fmt.Errorf("%w: range %q", err, a1)
	}
	return r, nil
}

// parseCell reads A1, $A$1 or a bare column such as C (row 0).
func parseCell(ref string) (col, row int, err error) {
	name := ref
	if strings.IndexFunc(ref, unicode.IsDigit) >= 0 {
		if name, row, err = excelize.SplitCellName(ref); err != nil {
			return 0, 0, fmt.Errorf("%w: %w", compute.ErrInvalidInput, err)
		}
	}
	if col, err = excelize.ColumnNameToNumber(strings.ReplaceAll(name, "$", "")); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", compute.ErrInvalidInput, err)
	}
	return col, row, nil
}
