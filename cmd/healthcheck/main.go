package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"healthcheck/pkg/api"
	"healthcheck/pkg/config"
	"healthcheck/pkg/sheets"
	"healthcheck/pkg/xlsx"

	log "github.com/sirupsen/logrus"
)

type options struct {
	configFile string
	workbook   string
	install    bool
	refresh    bool
	charts     bool
	crosscheck bool
	export     string
}

func main() {
	var opts options
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.StringVar(&opts.configFile, "config", "healthcheck.toml", "Configuration file (.toml or .yaml)")
	flag.StringVar(&opts.workbook, "xlsx", "", "Work on a local .xlsx workbook instead of the Google spreadsheet")
	flag.BoolVar(&opts.install, "install", false, "Create the template (if missing) and compute sheets")
	flag.BoolVar(&opts.refresh, "refresh", false, "Refill the compute sheet with the current survey sheets")
	flag.BoolVar(&opts.charts, "charts", false, "Create the chart sheets")
	flag.BoolVar(&opts.crosscheck, "crosscheck", false, "Check a scratch compute sheet against locally computed statistics")
	flag.StringVar(&opts.export, "export", "", "Snapshot the spreadsheet's surveys into a new .xlsx workbook")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if !opts.install && !opts.refresh && !opts.charts && !opts.crosscheck && opts.export == "" {
		log.Error("Nothing to do: pass at least one of -install, -refresh, -charts, -crosscheck or -export")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var sheet sheets.SheetWriter
	if opts.workbook != "" {
		wb, err := xlsx.Open(opts.workbook)
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
		defer wb.Close()
		wb.Layout = cfg.Layout
		if err := runAll(ctx, wb, cfg, opts); err != nil {
			return err
		}
		if err := wb.Save(); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
		return nil
	}

	if sheet, err = sheets.NewSheetClient(ctx, cfg.CredentialsFile, cfg.SpreadsheetID); err != nil {
		return fmt.Errorf("failed to connect to Google Sheets: %w", err)
	}
	return runAll(ctx, sheet, cfg, opts)
}

func runAll(ctx context.Context, sheet sheets.SheetWriter, cfg config.Settings, opts options) error {
	if opts.install {
		if err := api.Install(ctx, sheet, cfg, cfg.ComputeSheet); err != nil {
			return fmt.Errorf("failed to install compute sheet: %w", err)
		}
	} else if opts.refresh {
		if _, err := api.Refresh(ctx, sheet, cfg, cfg.ComputeSheet); err != nil {
			return fmt.Errorf("failed to refresh compute sheet: %w", err)
		}
	}
	if opts.charts {
		if err := api.CreateCharts(ctx, sheet, cfg); err != nil {
			return fmt.Errorf("failed to create charts: %w", err)
		}
	}
	if opts.crosscheck {
		res, err := api.Crosscheck(ctx, sheet, cfg)
		if err != nil {
			return fmt.Errorf("crosscheck failed: %w", err)
		}
		log.Printf("Crosscheck written to %q against %q", cfg.CrosscheckSheet, res.ComputeSheet)
	}
	if opts.export != "" {
		if err := api.Export(ctx, sheet, opts.export, cfg); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
	}
	return nil
}
