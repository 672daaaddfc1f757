package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/datastore"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/errors"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/extraction"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/report"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/ris"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/screening"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// RunPipeline executes the full review: import, deduplicate, screen, extract,
// analyze, persist and report.
func RunPipeline(settings *conf.Settings) error {
	raw, err := importRecords(settings)
	if err != nil {
		return err
	}
	slog.Info("records imported", "count", len(raw), "path", settings.Input.Path)

	deduped := screening.Deduplicate(raw)
	screened := screening.Screen(deduped, &settings.Screening)
	flow := screening.Flow(raw, deduped, screened)
	slog.Info("screening complete",
		"imported", flow.Imported,
		"deduplicated", flow.Deduplicated,
		"included", flow.Included)

	table := extraction.BuildTable(screened)

	results := RunAnalyses(table, &settings.Analysis)
	results.Flow = flow

	if err := persistRun(settings, flow, table, results); err != nil {
		return err
	}
	return writeReports(settings, table, results)
}

// AnalyzeTable runs the analyses over a previously extracted metrics table
// and reports them, skipping import and screening.
func AnalyzeTable(settings *conf.Settings, tablePath string) error {
	table, err := study.LoadTable(tablePath)
	if err != nil {
		return err
	}
	slog.Info("metrics table loaded", "rows", len(table), "path", tablePath)

	results := RunAnalyses(table, &settings.Analysis)
	return writeReports(settings, table, results)
}

func importRecords(settings *conf.Settings) ([]study.RawRecord, error) {
	path := settings.Input.Path
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	if info.IsDir() {
		return ris.ParseDir(path, settings.Input.Recursive)
	}
	return ris.ParseFile(path)
}

// persistRun archives the run when a database output is enabled.
func persistRun(settings *conf.Settings, flow screening.FlowCounts, table study.Table, results *Results) error {
	store := datastore.New(settings)
	if store == nil {
		return nil
	}
	if err := store.Open(); err != nil {
		return errors.New(err).
			Component("analysis").
			Category(errors.CategoryDatabase).
			Build()
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("closing datastore", "error", err)
		}
	}()

	run := datastore.NewRun(settings.Input.Path, flow)
	outcomes := datastore.FlattenContinuous(results.Continuous)
	outcomes = append(outcomes, datastore.FlattenDiagnostic(results.Diagnostic)...)
	outcomes = append(outcomes, datastore.FlattenSubgroups(results.Subgroups)...)
	outcomes = append(outcomes, datastore.FlattenBias(results.Bias)...)

	if err := store.SaveRun(run, datastore.FromTable(table), outcomes); err != nil {
		return errors.New(err).
			Component("analysis").
			Category(errors.CategoryDatabase).
			Context("run_id", run.ID).
			Build()
	}
	slog.Info("run archived", "run_id", run.ID, "outcomes", len(outcomes))
	return nil
}

// reportSection pairs a report name with its renderer.
type reportSection struct {
	name  string
	write func(io.Writer, report.Format) error
}

func reportSections(table study.Table, results *Results) []reportSection {
	sections := []reportSection{
		{"screening_flow", func(w io.Writer, f report.Format) error {
			return report.WriteFlow(w, f, results.Flow)
		}},
		{"descriptive", func(w io.Writer, f report.Format) error {
			return report.WriteDescriptive(w, f, results.Descriptive)
		}},
		{"metrics_table", func(w io.Writer, f report.Format) error {
			return study.WriteTable(w, table)
		}},
		{"continuous", func(w io.Writer, f report.Format) error {
			return report.WriteContinuous(w, f, results.Continuous)
		}},
		{"diagnostic", func(w io.Writer, f report.Format) error {
			return report.WriteDiagnostic(w, f, results.Diagnostic)
		}},
		{"subgroups", func(w io.Writer, f report.Format) error {
			return report.WriteSubgroups(w, f, results.Subgroups)
		}},
		{"publication_bias", func(w io.Writer, f report.Format) error {
			return report.WriteBias(w, f, results.Bias)
		}},
		{"grade", func(w io.Writer, f report.Format) error {
			return report.WriteGrades(w, f, results.Grades)
		}},
	}
	// One funnel section per metric with enough studies to plot.
	for _, b := range results.Bias {
		if b.Insufficient() {
			continue
		}
		sections = append(sections, reportSection{
			"funnel_" + b.Metric.String(),
			func(w io.Writer, f report.Format) error {
				return report.WriteFunnel(w, f, b)
			},
		})
	}
	return sections
}

// writeReports renders every section to the configured output directory, or
// to stdout when file export is disabled.
func writeReports(settings *conf.Settings, table study.Table, results *Results) error {
	format := report.Format(settings.Output.File.Type)
	if format != report.FormatCSV {
		format = report.FormatTable
	}

	sections := reportSections(table, results)

	if !settings.Output.File.Enabled {
		for _, s := range sections {
			report.Section(os.Stdout, s.name)
			if err := s.write(os.Stdout, format); err != nil {
				return err
			}
		}
		return nil
	}

	dir := settings.Output.File.Path
	for _, s := range sections {
		name := s.name
		path := filepath.Join(dir, fmt.Sprintf("%s%s", name, report.Ext(format)))
		if name == "metrics_table" {
			path = filepath.Join(dir, "metrics_table.csv")
		}
		writeFn := s.write
		if err := report.ToFile(path, func(w io.Writer) error { return writeFn(w, format) }); err != nil {
			return err
		}
		slog.Info("report written", "path", path)
	}
	return nil
}
