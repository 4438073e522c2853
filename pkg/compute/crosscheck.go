package compute

import (
	"strconv"

	"healthcheck/pkg/column"
)

// Crosscheck compares hand-computed statistics on a crosscheck sheet with
// one row of a compute sheet.
type Crosscheck struct {
	ComputeSheet string
	// ComputeRow is the compute sheet row holding the reference survey.
	ComputeRow int
	// ExpectedRow holds the expected values, one per dimension and sentiment,
	// starting at StartColumn. The EQ formulas go in the row beneath.
	ExpectedRow int
	StartColumn int
}

// Formulas returns one EQ formula per dimension and sentiment for stat.
func (c Crosscheck) Formulas(l *Layout, stat Statistic) []string {
	var formulas []string
	i := 0
	for d := 0; d < l.Dimensions(); d++ {
		for s := range l.Sentiments() {
			expected := Ref(column.Cell(c.StartColumn+i, c.ExpectedRow))
			actual := SheetRef(c.ComputeSheet, column.MustLabel(l.Position(d, s, stat))+"$"+strconv.Itoa(c.ComputeRow))
			formulas = append(formulas, Render(Fn("EQ", expected, actual)))
			i++
		}
	}
	return formulas
}

// ExpectedValues renders evaluated statistics as cell values, blanks as "".
func ExpectedValues(expected []Expected) []interface{} {
	values := make([]interface{}, len(expected))
	for i, e := range expected {
		if e.Blank {
			values[i] = ""
			continue
		}
		values[i] = e.Value
	}
	return values
}
