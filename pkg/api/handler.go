package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"healthcheck/pkg/compute"
	"healthcheck/pkg/config"
)

type handler struct {
	cfg config.Settings
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Failed to encode response: %v", err)
		sendResponse(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	sendResponse(w, status, body)
}

func sendError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
	} else {
		log.Debugf("Bad request: %v", err)
	}
	sendJSON(w, status, ErrorResponse{Error: err.Error()})
}

func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q is not a number", compute.ErrInvalidInput, name, raw)
	}
	return &v, nil
}

func statisticParam(r *http.Request) (compute.Statistic, error) {
	raw := strings.ToLower(r.URL.Query().Get("statistic"))
	if raw == "" {
		return compute.Average, nil
	}
	stat, ok := Statistics[raw]
	if !ok {
		return 0, fmt.Errorf("%w: unknown statistic %q", compute.ErrInvalidInput, raw)
	}
	return stat, nil
}

// dimensionNames names count dimensions after the configured template, or
// generically when the count differs from it.
func (h *handler) dimensionNames(count int) []string {
	if count == h.cfg.Template.Count() {
		return h.cfg.Template.DimensionNames()
	}
	names := make([]string, count)
	for i := range names {
		names[i] = "Dimension " + strconv.Itoa(i+1)
	}
	return names
}

// layout builds the compute layout for the dimensions query parameter,
// defaulting to the template's dimension count.
func (h *handler) layout(r *http.Request) (*compute.Layout, error) {
	dims, err := intParam(r, "dimensions")
	if err != nil {
		return nil, err
	}
	if dims == nil {
		count := h.cfg.Template.Count()
		if h.cfg.DimensionCount != nil {
			count = *h.cfg.DimensionCount
		}
		dims = &count
	}
	return compute.NewLayout(h.cfg.Layout, dims, h.cfg.Sentiments)
}

func (h *handler) getIndex(w http.ResponseWriter, r *http.Request) {
	sentiments := make([]string, len(h.cfg.Sentiments))
	for i, s := range h.cfg.Sentiments {
		sentiments[i] = s.Name
	}
	sendJSON(w, http.StatusOK, IndexResponse{
		Name:       h.cfg.SurveyPrefix,
		Dimensions: h.cfg.Template.Count(),
		Sentiments: sentiments,
		Routes:     []string{"/layout", "/charts", "/formulas"},
	})
}

func (h *handler) getLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.layout(r)
	if err != nil {
		sendError(w, err)
		return
	}
	names := h.dimensionNames(l.Dimensions())
	t, err := compute.BuildTable(l, names)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, LayoutResponse{
		Dimensions:   l.Dimensions(),
		TotalColumns: l.TotalColumns(),
		Names:        names,
		Table:        t,
	})
}

func (h *handler) getCharts(w http.ResponseWriter, r *http.Request) {
	l, err := h.layout(r)
	if err != nil {
		sendError(w, err)
		return
	}
	stat, err := statisticParam(r)
	if err != nil {
		sendError(w, err)
		return
	}
	charts, err := compute.PartitionIntoCharts(l, stat)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, ChartsResponse{Statistic: stat.String(), Charts: charts})
}

func (h *handler) getFormulas(w http.ResponseWriter, r *http.Request) {
	l, err := h.layout(r)
	if err != nil {
		sendError(w, err)
		return
	}
	row, err := intParam(r, "row")
	if err != nil {
		sendError(w, err)
		return
	}
	if row == nil {
		row = compute.IntPtr(h.cfg.Layout.DataStartRow)
	}
	if *row < h.cfg.Layout.DataStartRow {
		sendError(w, fmt.Errorf("%w: row %d is above the first data row %d", compute.ErrInvalidInput, *row, h.cfg.Layout.DataStartRow))
		return
	}
	formulas, err := compute.BuildFormulaSequence(l, *row)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, FormulasResponse{Row: *row, Formulas: formulas})
}
