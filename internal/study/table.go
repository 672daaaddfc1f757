package study

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// tableHeader is the canonical column order of a metrics table CSV. Missing
// numeric values are empty cells, never NaN text.
var tableHeader = []string{
	"study_id", "title", "year",
	"R2", "RMSE", "MAE", "Acc", "Sens", "Spec", "N",
	"ai_method", "domain", "scale", "included_meta",
}

// WriteTable writes the metrics table as CSV to w.
func WriteTable(w io.Writer, table Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("writing metrics table header: %w", err)
	}
	for i := range table {
		r := &table[i]
		rec := []string{
			r.StudyID,
			r.Title,
			formatMeasureInt(r.Year),
			formatMeasure(r.R2),
			formatMeasure(r.RMSE),
			formatMeasure(r.MAE),
			formatMeasure(r.Acc),
			formatMeasure(r.Sens),
			formatMeasure(r.Spec),
			formatMeasureInt(r.N),
			r.AIMethod,
			r.Domain,
			r.Scale,
			strconv.FormatBool(r.Included),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing metrics table row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTable writes the metrics table to the named CSV file.
func SaveTable(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics table file: %w", err)
	}
	defer f.Close()
	return WriteTable(f, table)
}

// ReadTable parses a metrics table CSV previously produced by WriteTable.
func ReadTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tableHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading metrics table header: %w", err)
	}
	for i, name := range tableHeader {
		if !strings.EqualFold(header[i], name) {
			return nil, fmt.Errorf("metrics table column %d: got %q, want %q", i+1, header[i], name)
		}
	}

	var table Table
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading metrics table line %d: %w", line, err)
		}
		row := MetricsRow{
			StudyID:  rec[0],
			Title:    rec[1],
			AIMethod: rec[10],
			Domain:   rec[11],
			Scale:    rec[12],
		}
		fields := []struct {
			dst *Measure
			col int
		}{
			{&row.Year, 2}, {&row.R2, 3}, {&row.RMSE, 4}, {&row.MAE, 5},
			{&row.Acc, 6}, {&row.Sens, 7}, {&row.Spec, 8}, {&row.N, 9},
		}
		for _, f := range fields {
			m, err := parseMeasure(rec[f.col])
			if err != nil {
				return nil, fmt.Errorf("metrics table line %d, column %s: %w", line, tableHeader[f.col], err)
			}
			*f.dst = m
		}
		included, err := strconv.ParseBool(rec[13])
		if err != nil {
			return nil, fmt.Errorf("metrics table line %d, column included_meta: %w", line, err)
		}
		row.Included = included
		table = append(table, row)
	}
	return table, nil
}

// LoadTable reads a metrics table from the named CSV file.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics table file: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}

func formatMeasure(m Measure) string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Val, 'g', -1, 64)
}

func formatMeasureInt(m Measure) string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatInt(int64(m.Val), 10)
}

func parseMeasure(s string) (Measure, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None(), err
	}
	return Some(v), nil
}
