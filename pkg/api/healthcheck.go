package api

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"healthcheck/pkg/column"
	"healthcheck/pkg/compute"
	"healthcheck/pkg/config"
	"healthcheck/pkg/sheets"
	"healthcheck/pkg/survey"
	"healthcheck/pkg/xlsx"
)

func hasSheet(ctx context.Context, sheet sheets.SheetWriter, name string) (bool, error) {
	names, err := sheet.SheetNames(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// CreateTemplate adds the survey template sheet holding the configured
// description and dimensions.
func CreateTemplate(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings) error {
	log.Printf("Creating %q sheet...", cfg.TemplateSheet)
	if err := sheet.AddSheet(ctx, cfg.TemplateSheet); err != nil {
		return err
	}
	rows := templateRows(cfg.Template)
	return sheet.WriteValues(ctx, sheets.RangeName(cfg.TemplateSheet, column.Cell(1, survey.TemplateDescriptionRow)), rows)
}

// ReadTemplate reads and checks the survey template sheet.
func ReadTemplate(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings) (survey.Template, error) {
	desc, err := sheet.ReadRange(ctx, sheets.RangeName(cfg.TemplateSheet, column.Cell(1, survey.TemplateDescriptionRow)))
	if err != nil {
		return survey.Template{}, err
	}
	description := ""
	if len(desc) > 0 && len(desc[0]) > 0 {
		description = desc[0][0]
	}
	last := column.MustLabel(len(survey.Header))
	rows, err := sheet.ReadRange(ctx, sheets.RangeName(cfg.TemplateSheet, column.Cell(1, survey.TemplateHeaderRow)+":"+last))
	if err != nil {
		return survey.Template{}, err
	}
	return survey.FromRows(description, rows)
}

// loadLayout reads the template and builds the compute layout and table
// for its dimensions.
func loadLayout(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings) (*compute.Table, error) {
	tmpl, err := ReadTemplate(ctx, sheet, cfg)
	if err != nil {
		return nil, err
	}
	count := tmpl.Count()
	l, err := cfg.NewLayout(&count)
	if err != nil {
		return nil, err
	}
	return compute.BuildTable(l, tmpl.DimensionNames())
}

// Install creates the template sheet if it is missing, then the compute
// sheet, and fills the compute sheet with the current surveys.
func Install(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings, computeSheet string) error {
	_, _, err := install(ctx, sheet, cfg, computeSheet)
	return err
}

func install(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings, computeSheet string) (*compute.Table, []survey.NameAndDate, error) {
	ok, err := hasSheet(ctx, sheet, cfg.TemplateSheet)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		if err := CreateTemplate(ctx, sheet, cfg); err != nil {
			return nil, nil, err
		}
	}
	t, err := loadLayout(ctx, sheet, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Creating compute sheet %q with %d columns...", computeSheet, t.Layout.TotalColumns())
	if err := t.Apply(ctx, sheet, computeSheet); err != nil {
		return nil, nil, err
	}
	surveys, err := Refresh(ctx, sheet, cfg, computeSheet)
	if err != nil {
		return nil, nil, err
	}
	return t, surveys, nil
}

// Refresh writes the survey response sheet names and dates, newest first,
// into the compute sheet and clears whatever was below them.
func Refresh(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings, computeSheet string) ([]survey.NameAndDate, error) {
	names, err := sheet.SheetNames(ctx)
	if err != nil {
		return nil, err
	}
	surveys, err := survey.NamesAndDates(cfg.SurveyPrefix, names)
	if err != nil {
		return nil, err
	}
	lc := cfg.Layout
	first := lc.DataStartRow
	next := first + len(surveys)
	target := column.Cell(lc.NameColumn, first) + ":" + column.Cell(lc.DateColumn, next-1)
	if err := sheet.WriteValues(ctx, sheets.RangeName(computeSheet, target), namesToRows(surveys)); err != nil {
		return nil, err
	}
	below := column.Cell(lc.NameColumn, next) + ":" + column.MustLabel(lc.DateColumn)
	if err := sheet.ClearRange(ctx, sheets.RangeName(computeSheet, below)); err != nil {
		return nil, err
	}
	log.Printf("Refreshed %q with %d surveys", computeSheet, len(surveys))
	return surveys, nil
}

// CreateCharts adds the average charts for the compute sheet.
func CreateCharts(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings) error {
	t, err := loadLayout(ctx, sheet, cfg)
	if err != nil {
		return err
	}
	charts, err := compute.PartitionIntoCharts(t.Layout, compute.Average)
	if err != nil {
		return err
	}
	for _, c := range charts {
		log.Debugf("Creating chart %q from ranges %v", c.Title, c.RangeList())
	}
	return sheet.AddCharts(ctx, cfg.ComputeSheet, charts)
}

// Crosscheck installs a scratch compute sheet and writes expected values
// for the reference survey, computed here, next to EQ formulas comparing
// them with the scratch sheet.
func Crosscheck(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings) (*CrosscheckResult, error) {
	// Excel caps sheet names at 31 characters.
	res := &CrosscheckResult{ComputeSheet: "Compute " + uuid.NewString()[:8]}
	t, surveys, err := install(ctx, sheet, cfg, res.ComputeSheet)
	if err != nil {
		return nil, err
	}
	res.Survey = cfg.ReferenceSurvey
	if res.Survey == "" {
		res.Survey = surveys[0].Name
	}
	idx := slices.IndexFunc(surveys, func(n survey.NameAndDate) bool { return n.Name == res.Survey })
	if res.Survey == "" || idx < 0 {
		return nil, fmt.Errorf("%w: reference survey %q", compute.ErrMissingValue, res.Survey)
	}
	res.ComputeRow = cfg.Layout.DataStartRow + idx

	l := t.Layout
	lastSource := l.SourceColumn(l.Dimensions()-1, len(l.Sentiments())-1)
	responses, err := sheet.ReadRange(ctx, sheets.RangeName(res.Survey, "A1:"+column.MustLabel(lastSource)))
	if err != nil {
		return nil, err
	}
	res.Average = compute.Evaluate(l, compute.Average, responses)
	res.SD = compute.Evaluate(l, compute.StandardDeviation, responses)

	ok, err := hasSheet(ctx, sheet, cfg.CrosscheckSheet)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := sheet.AddSheet(ctx, cfg.CrosscheckSheet); err != nil {
			return nil, err
		}
	}
	for _, part := range []struct {
		stat     compute.Statistic
		row      int
		expected []compute.Expected
	}{
		{compute.Average, crosscheckAverageRow, res.Average},
		{compute.StandardDeviation, crosscheckSDRow, res.SD},
	} {
		cc := compute.Crosscheck{
			ComputeSheet: res.ComputeSheet,
			ComputeRow:   res.ComputeRow,
			ExpectedRow:  part.row,
			StartColumn:  crosscheckStartColumn,
		}
		formulas := cc.Formulas(l, part.stat)
		rows := [][]interface{}{compute.ExpectedValues(part.expected), stringsToRow(formulas)}
		a1 := sheets.RangeName(cfg.CrosscheckSheet, column.Cell(crosscheckStartColumn, part.row))
		if err := sheet.WriteValues(ctx, a1, rows); err != nil {
			return nil, err
		}
	}
	log.Printf("Crosschecked %q against %q row %d", res.Survey, res.ComputeSheet, res.ComputeRow)
	return res, nil
}

// Export snapshots the template and survey response sheets of src into a
// local workbook at path, installs a compute sheet with charts there, and
// saves it.
func Export(ctx context.Context, src sheets.SheetWriter, path string, cfg config.Settings) error {
	tmpl, err := ReadTemplate(ctx, src, cfg)
	if err != nil {
		return err
	}
	names, err := src.SheetNames(ctx)
	if err != nil {
		return err
	}
	surveys, err := survey.NamesAndDates(cfg.SurveyPrefix, names)
	if err != nil {
		return err
	}

	wb, err := xlsx.Open(path)
	if err != nil {
		return err
	}
	defer wb.Close()
	wb.Layout = cfg.Layout

	local := cfg
	local.Template = tmpl
	for _, s := range surveys {
		if s.Name == "" {
			continue
		}
		rows, err := src.ReadRange(ctx, sheets.RangeName(s.Name, "A1:"+column.MustLabel(local.Layout.ResponseAnswerStartColumn+tmpl.Count()*len(cfg.Sentiments)-1)))
		if err != nil {
			return err
		}
		if err := wb.AddSheet(ctx, s.Name); err != nil {
			return err
		}
		if err := wb.WriteValues(ctx, sheets.RangeName(s.Name, "A1"), stringRows(rows)); err != nil {
			return err
		}
		log.Debugf("Copied %d rows of %q", len(rows), s.Name)
	}
	if err := Install(ctx, wb, local, local.ComputeSheet); err != nil {
		return err
	}
	if err := CreateCharts(ctx, wb, local); err != nil {
		return err
	}
	log.Printf("Exported %d surveys to %s", len(surveys), path)
	return wb.Save()
}
