package xlsx

import "regexp"

var (
	// Functions Excel stores with the future-function prefix.
	futureFunctions = regexp.MustCompile(`(^|[^.\w])(SWITCH|STDEV\.P)\b`)
	// INDIRECT over a survey name cell; the name is a sheet that may contain spaces.
	indirectSheet = regexp.MustCompile(`INDIRECT\((\$?[A-Z]+\$?[0-9]+)&"!`)
	// EQ is a Sheets operator function with no Excel counterpart.
	eqCall = regexp.MustCompile(`\bEQ\(([^,()]+),\s*([^,()]+)\)`)
)

// excelFormula rewrites a Sheets formula, with or without its leading "=",
// into the form excelize stores: no "=" and Excel function names.
func excelFormula(formula string) string {
	if len(formula) > 0 && formula[0] == '=' {
		formula = formula[1:]
	}
	formula = futureFunctions.ReplaceAllString(formula, "${1}_xlfn.${2}")
	formula = indirectSheet.ReplaceAllString(formula, `INDIRECT("'"&$1&"'!`)
	return eqCall.ReplaceAllString(formula, "($1=$2)")
}
