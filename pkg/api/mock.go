package api

import (
	"context"
	"fmt"

	"healthcheck/pkg/compute"
)

type writeCall struct {
	Range string
	Rows  [][]interface{}
}

type mockSheet struct {
	Sheets      []string
	Ranges      map[string][][]string
	Writes      []writeCall
	Clears      []string
	Tables      map[string]*compute.Table
	Charts      map[string][]compute.ChartSpec
	AddSheetErr error
}

func newMockSheet(sheets ...string) *mockSheet {
	return &mockSheet{
		Sheets: sheets,
		Ranges: map[string][][]string{},
		Tables: map[string]*compute.Table{},
		Charts: map[string][]compute.ChartSpec{},
	}
}

func (m *mockSheet) SheetNames(context.Context) ([]string, error) {
	return m.Sheets, nil
}

func (m *mockSheet) AddSheet(_ context.Context, name string) error {
	if m.AddSheetErr != nil {
		return m.AddSheetErr
	}
	for _, s := range m.Sheets {
		if s == name {
			return fmt.Errorf("sheet %q exists", name)
		}
	}
	m.Sheets = append(m.Sheets, name)
	return nil
}

func (m *mockSheet) ReadRange(_ context.Context, a1 string) ([][]string, error) {
	return m.Ranges[a1], nil
}

func (m *mockSheet) WriteValues(_ context.Context, a1 string, rows [][]interface{}) error {
	m.Writes = append(m.Writes, writeCall{Range: a1, Rows: rows})
	return nil
}

func (m *mockSheet) ClearRange(_ context.Context, a1 string) error {
	m.Clears = append(m.Clears, a1)
	return nil
}

func (m *mockSheet) ApplyTable(ctx context.Context, name string, t *compute.Table) error {
	if err := m.AddSheet(ctx, name); err != nil {
		return err
	}
	m.Tables[name] = t
	return nil
}

func (m *mockSheet) AddCharts(_ context.Context, name string, charts []compute.ChartSpec) error {
	m.Charts[name] = append(m.Charts[name], charts...)
	return nil
}
