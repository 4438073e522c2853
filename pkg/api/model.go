package api

import (
	"healthcheck/pkg/compute"
	"healthcheck/pkg/survey"
)

// Crosscheck sheet geometry: expected values on the odd rows, EQ formulas
// on the row beneath each, starting at column C.
const (
	crosscheckStartColumn = 3
	crosscheckAverageRow  = 7
	crosscheckSDRow       = 9
)

type IndexResponse struct {
	Name       string   `json:"name"`
	Dimensions int      `json:"dimensions"`
	Sentiments []string `json:"sentiments"`
	Routes     []string `json:"routes"`
}

type LayoutResponse struct {
	Dimensions   int      `json:"dimensions"`
	TotalColumns int      `json:"totalColumns"`
	Names        []string `json:"names"`
	*compute.Table
}

type ChartsResponse struct {
	Statistic string              `json:"statistic"`
	Charts    []compute.ChartSpec `json:"charts"`
}

type FormulasResponse struct {
	Row      int      `json:"row"`
	Formulas []string `json:"formulas"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CrosscheckResult describes a crosscheck run.
type CrosscheckResult struct {
	ComputeSheet string
	Survey       string
	ComputeRow   int
	Average      []compute.Expected
	SD           []compute.Expected
}

func namesToRows(names []survey.NameAndDate) [][]interface{} {
	rows := make([][]interface{}, len(names))
	for i, n := range names {
		rows[i] = n.Row()
	}
	return rows
}

func templateRows(t survey.Template) [][]interface{} {
	header := make([]interface{}, len(survey.Header))
	for i, h := range survey.Header {
		header[i] = h
	}
	rows := [][]interface{}{{t.Description}, header}
	for _, d := range t.Dimensions {
		rows = append(rows, d.Row())
	}
	return rows
}

func stringsToRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func stringRows(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		out[i] = stringsToRow(r)
	}
	return out
}
