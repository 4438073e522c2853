package sheets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"healthcheck/pkg/compute"
)

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

// baseBackoff is doubled on every rate-limited attempt.
var baseBackoff = time.Second

type SheetClient struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewSheetClient(ctx context.Context, jsonPath, spreadsheetID string, opts ...option.ClientOption) (*SheetClient, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet ID", compute.ErrMissingValue)
	}
	if jsonPath != "" {
		opts = append(opts, option.WithCredentialsFile(jsonPath))
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return &SheetClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
	}, nil
}

func isRateLimited(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && (gErr.Code == 429 || gErr.Code == 403)
}

// withRetry runs fn, backing off exponentially while Google rate limits us.
func withRetry(ctx context.Context, what string, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return fmt.Errorf("%s: %w", what, err)
		}
		backoff := time.Duration(math.Pow(2, float64(attempt))) * baseBackoff
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		log.Printf("Rate limited by Google Sheets API, retrying in %v...", backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%s after %d retries: %w", what, maxRetries, err)
}

func (s *SheetClient) properties(ctx context.Context) ([]*sheets.SheetProperties, error) {
	var ss *sheets.Spreadsheet
	err := withRetry(ctx, "get spreadsheet", func() (err error) {
		ss, err = s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	props := make([]*sheets.SheetProperties, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		props = append(props, sh.Properties)
	}
	return props, nil
}

func (s *SheetClient) SheetNames(ctx context.Context) ([]string, error) {
	props, err := s.properties(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Title
	}
	return names, nil
}

func (s *SheetClient) sheetID(ctx context.Context, name string) (int64, error) {
	props, err := s.properties(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range props {
		if p.Title == name {
			return p.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q", compute.ErrMissingValue, name)
}

func (s *SheetClient) batchUpdate(ctx context.Context, what string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	var resp *sheets.BatchUpdateSpreadsheetResponse
	err := withRetry(ctx, what, func() (err error) {
		resp, err = s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		return err
	})
	return resp, err
}

func (s *SheetClient) addSheet(ctx context.Context, props *sheets.SheetProperties) (int64, error) {
	resp, err := s.batchUpdate(ctx, "add sheet "+props.Title, []*sheets.Request{
		{AddSheet: &sheets.AddSheetRequest{Properties: props}},
	})
	if err != nil {
		return 0, err
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("%w: add sheet reply for %q", compute.ErrMissingValue, props.Title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (s *SheetClient) AddSheet(ctx context.Context, name string) error {
	_, err := s.addSheet(ctx, &sheets.SheetProperties{Title: name})
	return err
}

func (s *SheetClient) ReadRange(ctx context.Context, a1 string) ([][]string, error) {
	var resp *sheets.ValueRange
	err := withRetry(ctx, "read "+a1, func() (err error) {
		resp, err = s.service.Spreadsheets.Values.Get(s.spreadsheetID, a1).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = fmt.Sprint(v)
		}
	}
	return rows, nil
}

func (s *SheetClient) WriteValues(ctx context.Context, a1 string, rows [][]interface{}) error {
	return withRetry(ctx, "write "+a1, func() error {
		_, err := s.service.Spreadsheets.Values.Update(
			s.spreadsheetID,
			a1,
			&sheets.ValueRange{Values: rows},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	})
}

func (s *SheetClient) ClearRange(ctx context.Context, a1 string) error {
	return withRetry(ctx, "clear "+a1, func() error {
		_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, a1, &sheets.ClearValuesRequest{}).Context(ctx).Do()
		return err
	})
}

// ApplyTable creates sheetName and lays the compute table out on it. Only
// the first data row is written; the sheet fills it down itself.
func (s *SheetClient) ApplyTable(ctx context.Context, sheetName string, t *compute.Table) error {
	cfg := t.Layout.Config
	id, err := s.addSheet(ctx, &sheets.SheetProperties{
		Title: sheetName,
		GridProperties: &sheets.GridProperties{
			RowCount:          int64(cfg.Rows),
			ColumnCount:       int64(t.Layout.TotalColumns()),
			FrozenRowCount:    int64(cfg.DataStartRow - 1),
			FrozenColumnCount: int64(cfg.CountColumn),
		},
	})
	if err != nil {
		return err
	}
	log.Debugf("Created sheet %q with id %d", sheetName, id)

	err = withRetry(ctx, "write compute headers and formulas", func() error {
		_, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             tableValues(sheetName, t),
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return err
	}

	_, err = s.batchUpdate(ctx, "format "+sheetName, tableRequests(id, sheetName, t))
	return err
}

// AddCharts adds one line chart per ChartSpec, each on its own sheet named
// after the chart.
func (s *SheetClient) AddCharts(ctx context.Context, sheetName string, charts []compute.ChartSpec) error {
	if len(charts) == 0 {
		return nil
	}
	id, err := s.sheetID(ctx, sheetName)
	if err != nil {
		return err
	}
	requests := make([]*sheets.Request, len(charts))
	for i, c := range charts {
		requests[i] = chartRequest(id, c)
	}
	resp, err := s.batchUpdate(ctx, "add charts", requests)
	if err != nil {
		return err
	}
	var renames []*sheets.Request
	for i, reply := range resp.Replies {
		if reply.AddChart == nil || reply.AddChart.Chart == nil || reply.AddChart.Chart.Position == nil {
			continue
		}
		renames = append(renames, chartSheetRequests(reply.AddChart.Chart.Position.SheetId, charts[i].Title)...)
	}
	if len(renames) == 0 {
		return nil
	}
	_, err = s.batchUpdate(ctx, "name chart sheets", renames)
	return err
}
