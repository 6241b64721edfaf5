// Command merger reads Excel workbooks, groups rows on configured key
// columns, and writes three artifacts per workbook: an .xlsx with the
// key cells of each group merged and centered, an ordered JSON
// document keyed by joined composite keys, and optionally a flattened
// CSV of the grouped table.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"xlmerge/internal/config"
	"xlmerge/internal/dataprocessing"
	"xlmerge/internal/exporter"
	"xlmerge/internal/files"
	"xlmerge/internal/infrastructure"
	"xlmerge/pkg/contracts"
)

const defaultWorkers = 4

func main() {
	in := flag.String("in", "", "input .xlsx file or directory of .xlsx files")
	out := flag.String("out", "out", "output directory for generated artifacts")
	configPath := flag.String("config", "", "config file path (defaults to xlmerge.yaml when present)")
	sheet := flag.String("sheet", "", "worksheet to read, overrides config (empty means first sheet)")
	headerRow := flag.Int("header-row", 0, "1-based header row, overrides config when positive")
	workers := flag.Int("workers", defaultWorkers, "maximum workbooks processed concurrently")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: merger -in <file-or-dir> [-out <dir>] [-config <file>] [-sheet <name>] [-header-row <n>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *sheet != "" {
		cfg.Input.Sheet = *sheet
	}
	if *headerRow > 0 {
		cfg.Input.HeaderRow = *headerRow
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger = logger.With(slog.String("run_id", uuid.NewString()))

	sources, err := files.NewDiscovery("").Resolve(*in)
	if err != nil {
		logger.Error("Input discovery failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	namer := files.NewOutputNamer(*out)
	if err := namer.EnsureDir(); err != nil {
		logger.Error("Failed to prepare output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting merge run",
		slog.String("version", contracts.Version),
		slog.String("input", *in),
		slog.String("output_dir", *out),
		slog.Int("workbooks", len(sources)),
		slog.Int("workers", *workers))

	var failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(*workers)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			// One bad workbook must not sink the batch; failures are
			// counted and reflected in the exit code.
			if err := processWorkbook(cfg, namer, src); err != nil {
				logger.Error("Workbook processing failed",
					slog.String("file", src.Name),
					slog.String("error", err.Error()))
				failed.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Error("Merge run finished with failures",
			slog.Int64("failed", n),
			slog.Int("workbooks", len(sources)))
		os.Exit(1)
	}
	logger.Info("Merge run complete", slog.Int("workbooks", len(sources)))
}

// processWorkbook runs the full pipeline for one source workbook:
// parse, normalize, group, compute merge ranges, and write the
// configured artifacts.
func processWorkbook(cfg *config.Config, namer *files.OutputNamer, src files.FileInfo) error {
	table, err := dataprocessing.ParseFile(src.Path, dataprocessing.ParseOptions{
		Sheet:     cfg.Input.Sheet,
		HeaderRow: cfg.Input.HeaderRow,
	})
	if err != nil {
		return err
	}

	detail := cfg.Columns.Detail
	if len(detail) == 0 {
		detail = remainingColumns(table.Header, cfg.Columns.Key)
	}

	processor := dataprocessing.NewProcessor(dataprocessing.ProcessorOptions{
		KeyColumns:    cfg.Columns.Key,
		DetailColumns: detail,
		DateKeywords:  cfg.Dates.Keywords,
	})
	grouped, err := processor.Process(table)
	if err != nil {
		return err
	}

	layout := exporter.Layout{
		IndexHeader: cfg.Export.IndexHeader,
		Renames:     cfg.Columns.Renames,
	}
	ranges := dataprocessing.ComputeMergeRanges(grouped, 1, layout.MergeColumns(grouped))

	outputs := namer.For(src.Path)
	if err := exporter.NewWorkbookWriter(layout).Write(grouped, ranges, outputs.Workbook); err != nil {
		return err
	}
	if err := exporter.NewJSONExporter(cfg.Export.JSONKeyDelimiter, cfg.Columns.Renames).Export(grouped, outputs.JSON); err != nil {
		return err
	}
	if cfg.Export.CSV {
		if err := exporter.NewGroupedCSVExporter(layout).Export(grouped, outputs.CSV); err != nil {
			return err
		}
	}
	return nil
}

// remainingColumns returns the header columns not named as keys, in
// header order. Used when no explicit detail list is configured.
func remainingColumns(header, keyColumns []string) []string {
	keys := make(map[string]bool, len(keyColumns))
	for _, col := range keyColumns {
		keys[col] = true
	}

	var rest []string
	for _, col := range header {
		if !keys[col] {
			rest = append(rest, col)
		}
	}
	return rest
}
