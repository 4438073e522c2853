package compute

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcheck/pkg/column"
)

func TestRender(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{Fn("SUM", Ref("A1"), Int(2)), "=SUM(A1, 2)"},
		{Str(`say "hi"`), `="say ""hi"""`},
		{Concat{Left: Ref("A3"), Right: Str("!C:C")}, `=A3&"!C:C"`},
		{Eq{Left: Ref("C3"), Right: Int(0)}, "=C3 = 0"},
		{Fn("IF", Ref("A1"), Int(1), Blank{}), "=IF(A1, 1, )"},
		{SheetRef("Bob's sheet", "A1"), "='Bob''s sheet'!A1"},
	}
	for _, tt := range tests {
		if got := Render(tt.expr); got != tt.want {
			t.Errorf("Render() = %q, want %q", got, tt.want)
		}
	}
}

func TestStatFormula(t *testing.T) {
	fb := FormulaBuilder{Config: DefaultLayoutConfig(), Row: 3}
	labels := Labels{"Good", "Neutral", "Bad"}

	assert.Equal(t,
		`=IF(NOT(OR(ISBLANK(A3), C3 = 0)), AVERAGE(IFERROR(SWITCH(INDIRECT(A3&"!C:C"), "Good", 3, "Neutral", 2, "Bad", 1))), )`,
		fb.StatFormula(Average, "C", labels),
	)
	assert.Equal(t,
		`=IF(NOT(OR(ISBLANK(A7), C7 = 0)), STDEV.P(IFERROR(SWITCH(INDIRECT(A7&"!AB:AB"), "Good", 3, "Neutral", 2, "Bad", 1))), )`,
		FormulaBuilder{Config: DefaultLayoutConfig(), Row: 7}.StatFormula(StandardDeviation, "AB", labels),
	)
}

func TestStatFormulaPair(t *testing.T) {
	fb := FormulaBuilder{Config: DefaultLayoutConfig(), Row: 3}
	labels := Labels{"Good", "Neutral", "Bad"}
	pair, err := fb.StatFormulaPair(4, labels)
	require.NoError(t, err)
	assert.Equal(t, fb.StatFormula(Average, "D", labels), pair[0])
	assert.Equal(t, fb.StatFormula(StandardDeviation, "D", labels), pair[1])

	_, err = fb.StatFormulaPair(0, labels)
	assert.ErrorIs(t, err, column.ErrInvalidIndex)
}

func TestRespondentCount(t *testing.T) {
	fb := FormulaBuilder{Config: DefaultLayoutConfig(), Row: 3}
	assert.Equal(t, `=IF(NOT(ISBLANK($A3)), COUNTIF(INDIRECT($A3&"!B:B"), "*@*"), )`, fb.RespondentCount())
}

func TestLabelsAreQuoted(t *testing.T) {
	fb := FormulaBuilder{Config: DefaultLayoutConfig(), Row: 3}
	f := fb.StatFormula(Average, "C", Labels{`Say "yes"`, "Good 🙂", "Bad 🙁"})
	assert.Contains(t, f, `"Say ""yes""", 3`)
	assert.Contains(t, f, `"Good 🙂", 2`)
	assert.Contains(t, f, `"Bad 🙁", 1`)
}

func TestFormulaSequenceLength(t *testing.T) {
	for dims := 0; dims <= 20; dims++ {
		l := newTestLayout(t, dims)
		formulas, err := BuildFormulaSequence(l, 3)
		require.NoError(t, err)
		assert.Len(t, formulas, 1+dims*2*2, "dims=%d", dims)
	}
}

// Every statistic column must read the response column of its own dimension
// and sentiment.
func TestFormulaSequenceMatchesLayout(t *testing.T) {
	l := newTestLayout(t, 11)
	formulas, err := BuildFormulaSequence(l, 3)
	require.NoError(t, err)
	require.Len(t, formulas, l.TotalColumns()-l.Config.CountColumn+1)

	assert.True(t, strings.Contains(formulas[0], "COUNTIF"))
	for d := 0; d < l.Dimensions(); d++ {
		for s := range l.Sentiments() {
			source := column.MustLabel(l.SourceColumn(d, s))
			for _, stat := range Statistics() {
				f := formulas[l.Position(d, s, stat)-l.Config.CountColumn]
				assert.Contains(t, f, `"!`+source+":"+source+`")`)
				assert.Contains(t, f, stat.Function()+"(IFERROR(")
				for _, label := range l.Labels(s) {
					assert.Contains(t, f, `"`+label+`"`)
				}
			}
		}
	}
}
