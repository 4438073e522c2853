package compute

import (
	"strings"

	"github.com/montanaflynn/stats"
)

// Score maps a response to its rank score: 3 for the most positive label
// down to 1. ok is false for anything else.
func Score(labels Labels, value string) (score int, ok bool) {
	for i, l := range labels {
		if value == l {
			return len(labels) - i, true
		}
	}
	return 0, false
}

// Aggregate computes stat over the scored responses the same way the
// compute sheet formulas do. Unscored values are skipped; ok is false when
// nothing could be scored.
func Aggregate(stat Statistic, labels Labels, values []string) (float64, bool) {
	var data stats.Float64Data
	for _, v := range values {
		if score, ok := Score(labels, v); ok {
			data = append(data, float64(score))
		}
	}
	if len(data) == 0 {
		return 0, false
	}
	var (
		result float64
		err    error
	)
	switch stat {
	case Average:
		result, err = stats.Mean(data)
	case StandardDeviation:
		result, err = stats.StandardDeviationPopulation(data)
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return result, true
}

// CountRespondents counts values that look like email addresses.
func CountRespondents(values []string) int {
	n := 0
	for _, v := range values {
		if strings.Contains(v, "@") {
			n++
		}
	}
	return n
}

// ColumnValues extracts the 1-based column col from rows of a response sheet.
func ColumnValues(rows [][]string, col int) []string {
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		if col-1 < len(r) {
			values = append(values, r[col-1])
		}
	}
	return values
}

// Expected is the value a compute row should show for one survey.
type Expected struct {
	Dimension int
	Sentiment int
	Value     float64
	Blank     bool
}

// Evaluate computes stat for every dimension and sentiment from the rows
// of a survey response sheet, in compute sheet column order. A survey
// without respondents evaluates to blanks.
func Evaluate(l *Layout, stat Statistic, rows [][]string) []Expected {
	respondents := CountRespondents(ColumnValues(rows, l.Config.ResponseEmailColumn))
	var expected []Expected
	for d := 0; d < l.Dimensions(); d++ {
		for s := range l.Sentiments() {
			e := Expected{Dimension: d, Sentiment: s, Blank: true}
			if respondents > 0 {
				v, ok := Aggregate(stat, l.Labels(s), ColumnValues(rows, l.SourceColumn(d, s)))
				e.Value, e.Blank = v, !ok
			}
			expected = append(expected, e)
		}
	}
	return expected
}
