package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ridepulse/internal/analytics"
	"ridepulse/internal/config"
	"ridepulse/internal/exporter"
	"ridepulse/internal/infrastructure"
	"ridepulse/internal/services"
)

const dateLayout = "2006-01-02"

func main() {
	snapshotPath := flag.String("snapshot", "", "path to the bookings CSV (defaults to configured snapshot)")
	outputDir := flag.String("out", "", "output directory for report files (defaults to configured reports dir)")
	format := flag.String("format", "both", "output format: csv | excel | both")
	from := flag.String("from", "", "start date filter (YYYY-MM-DD)")
	to := flag.String("to", "", "end date filter (YYYY-MM-DD)")
	vehicles := flag.String("vehicles", "", "comma-separated vehicle types to include")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *snapshotPath == "" {
		*snapshotPath = cfg.SnapshotPath()
	}
	if *outputDir == "" {
		*outputDir = cfg.ReportsDir()
	}

	filter, err := buildFilter(*from, *to, *vehicles)
	if err != nil {
		logger.Error("Invalid filter", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc := services.NewDashboardService(services.NewLoader(*snapshotPath, logger, nil), logger)

	logger.Info("Building report summary",
		"snapshot", *snapshotPath,
		"output_dir", *outputDir,
		"format", *format)

	summary, err := exporter.BuildSummary(ctx, svc, filter)
	if err != nil {
		logger.Error("Failed to build summary", "error", err)
		os.Exit(1)
	}

	switch *format {
	case "csv":
		err = writeCSV(summary, *outputDir, logger)
	case "excel":
		err = writeExcel(summary, *outputDir, logger)
	case "both":
		if err = writeCSV(summary, *outputDir, logger); err == nil {
			err = writeExcel(summary, *outputDir, logger)
		}
	default:
		logger.Error("Unknown format", "format", *format)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	logger.Info("Report written", "output_dir", *outputDir)
}

func buildFilter(from, to, vehicles string) (analytics.Filter, error) {
	var f analytics.Filter
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return f, err
		}
		f.Start = t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return f, err
		}
		f.End = t
	}
	if vehicles != "" {
		for _, v := range strings.Split(vehicles, ",") {
			if v = strings.TrimSpace(v); v != "" {
				f.VehicleTypes = append(f.VehicleTypes, v)
			}
		}
	}
	return f, f.Validate()
}

func writeCSV(summary *exporter.Summary, dir string, logger *slog.Logger) error {
	return exporter.NewCSVWriter(dir, logger).WriteSummary(summary)
}

func writeExcel(summary *exporter.Summary, dir string, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, "ride-summary.xlsx")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := summary.WriteExcel(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.Info("Workbook written", "path", path)
	return nil
}
