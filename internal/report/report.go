// Package report renders every analysis outcome as an aligned text table or
// delimited CSV, to stdout or to files in the configured output directory.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/errors"
)

// Format selects the report rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// missing marks an undefined statistic in report output.
const missing = "NA"

// render writes one header row plus data rows in the requested format.
func render(w io.Writer, format Format, header []string, rows [][]string) error {
	if format == FormatCSV {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("writing report header: %w", err)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("writing report rows: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return tw.Flush()
}

// num formats a statistic, mapping NaN to the missing marker.
func num(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// pvalue formats a p-value with the extra precision small values need.
func pvalue(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	if v != 0 && v < 0.0001 {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// ToFile renders into path, creating the parent directory when needed.
func ToFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("report").
				Category(errors.CategoryFileIO).
				Context("path", path).
				Build()
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("report").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	return f.Close()
}

// Ext returns the file extension for a format.
func Ext(format Format) string {
	if format == FormatCSV {
		return ".csv"
	}
	return ".txt"
}
