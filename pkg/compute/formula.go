package compute

import (
	"fmt"

	"healthcheck/pkg/column"
)

// FormulaBuilder generates the compute sheet formulas for one row. Every
// formula reads the survey response sheet named in the row's name cell.
type FormulaBuilder struct {
	Config LayoutConfig
	Row    int
}

func (fb FormulaBuilder) nameCell() Ref {
	return Ref(column.Cell(fb.Config.NameColumn, fb.Row))
}

func (fb FormulaBuilder) countCell() Ref {
	return Ref(column.Cell(fb.Config.CountColumn, fb.Row))
}

// indirect resolves selector on the sheet named by name.
func indirect(name Ref, selector string) Expr {
	return Fn("INDIRECT", Concat{Left: name, Right: Str("!" + selector)})
}

// StatFormula aggregates the responses in sourceColumn (a column label of
// the response sheet) into stat, scoring labels 3, 2 and 1. Responses that
// match no label are dropped by IFERROR. Rows without a survey name or
// without respondents stay blank.
func (fb FormulaBuilder) StatFormula(stat Statistic, sourceColumn string, labels Labels) string {
	scored := []Expr{indirect(fb.nameCell(), sourceColumn+":"+sourceColumn)}
	for i, l := range labels {
		scored = append(scored, Str(l), Int(len(labels)-i))
	}
	guard := Fn("NOT", Fn("OR",
		Fn("ISBLANK", fb.nameCell()),
		Eq{Left: fb.countCell(), Right: Int(0)},
	))
	return Render(Fn("IF",
		guard,
		Fn(stat.Function(), Fn("IFERROR", Fn("SWITCH", scored...))),
		Blank{},
	))
}

// StatFormulaPair returns the average and standard deviation formulas, in
// that order, for a response sheet column index.
func (fb FormulaBuilder) StatFormulaPair(sourceColumn int, labels Labels) ([2]string, error) {
	label, err := column.ToLabel(sourceColumn)
	if err != nil {
		return [2]string{}, fmt.Errorf("source column: %w", err)
	}
	return [2]string{
		fb.StatFormula(Average, label, labels),
		fb.StatFormula(StandardDeviation, label, labels),
	}, nil
}

// RespondentCount counts the response sheet rows whose email column looks
// like an email address.
func (fb FormulaBuilder) RespondentCount() string {
	name := Ref(fmt.Sprintf("$%s%d", column.MustLabel(fb.Config.NameColumn), fb.Row))
	return Render(Fn("IF",
		Fn("NOT", Fn("ISBLANK", name)),
		Fn("COUNTIF", indirect(name, column.Span(fb.Config.ResponseEmailColumn)), Str("*@*")),
		Blank{},
	))
}
