// Package extraction mines quantitative performance metrics and study
// descriptors from free-text abstracts, producing the normalized per-study
// metrics table the statistical engine consumes.
package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// Patterns accept the usual abstract phrasings: "R2 = 0.91", "RMSE of 0.12",
// "accuracy: 87%", "an accuracy of 92.5 %", "n = 120".
var (
	reR2   = regexp.MustCompile(`(?i)\bR(?:\^?2|²)\s*(?:value)?\s*(?:=|:|of|was|reached)?\s*([0-9]*\.?[0-9]+)\s*(%)?`)
	reRMSE = regexp.MustCompile(`(?i)\bRMSE\s*(?:=|:|of|was)?\s*([0-9]*\.?[0-9]+)`)
	reMAE  = regexp.MustCompile(`(?i)\bMAE\s*(?:=|:|of|was)?\s*([0-9]*\.?[0-9]+)`)
	reAcc  = regexp.MustCompile(`(?i)\baccurac(?:y|ies)\s*(?:=|:|of|was|reached)?\s*([0-9]*\.?[0-9]+)\s*(%)?`)
	reSens = regexp.MustCompile(`(?i)\bsensitivity\s*(?:=|:|of|was)?\s*([0-9]*\.?[0-9]+)\s*(%)?`)
	reSpec = regexp.MustCompile(`(?i)\bspecificity\s*(?:=|:|of|was)?\s*([0-9]*\.?[0-9]+)\s*(%)?`)
	reN    = regexp.MustCompile(`(?i)\bn\s*=\s*([0-9]+)\b`)
)

// BuildTable extracts a metrics row from every included record. Excluded
// records are skipped; the table preserves record order.
func BuildTable(records []study.ScreenedRecord) study.Table {
	table := make(study.Table, 0, len(records))
	for _, r := range records {
		if !r.Included {
			continue
		}
		table = append(table, ExtractRow(r))
	}
	return table
}

// ExtractRow mines one screened record into an immutable metrics row. The
// row is flagged for meta-analysis when at least one performance metric was
// found.
func ExtractRow(r study.ScreenedRecord) study.MetricsRow {
	text := r.Abstract

	row := study.MetricsRow{
		StudyID:  studyID(r),
		Title:    r.Title,
		R2:       extractUnitInterval(reR2, text),
		RMSE:     extractPositive(reRMSE, text),
		MAE:      extractPositive(reMAE, text),
		Acc:      extractProportion(reAcc, text),
		Sens:     extractProportion(reSens, text),
		Spec:     extractProportion(reSpec, text),
		N:        extractCount(reN, text),
		AIMethod: classifyMethod(r.Title + " " + text),
		Domain:   classifyDomain(r.Title + " " + text),
		Scale:    classifyScale(text),
	}
	if r.Year != 0 {
		row.Year = study.Some(float64(r.Year))
	}
	row.Included = row.R2.Valid || row.RMSE.Valid || row.MAE.Valid ||
		row.Acc.Valid || row.Sens.Valid || row.Spec.Valid
	return row
}

func studyID(r study.ScreenedRecord) string {
	if r.DOI != "" {
		return r.DOI
	}
	if r.Key != "" {
		return r.Key
	}
	return fmt.Sprintf("%s:%d", strings.ToLower(strings.Fields(r.Title + " x")[0]), r.Year)
}

// extractProportion reads a proportion-valued metric. Values above 1 are
// percentages and divided by 100; the result is bounded away from 0 and 1 so
// the logit transform downstream stays finite.
func extractProportion(re *regexp.Regexp, text string) study.Measure {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return study.None()
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return study.None()
	}
	if v > 1 || m[2] == "%" {
		v /= 100
	}
	if v <= 0 || v > 1 {
		return study.None()
	}
	if v == 1 {
		v = 0.999
	}
	return study.Some(v)
}

// extractUnitInterval reads a metric constrained to [0, 1] such as R2,
// tolerating percentage notation.
func extractUnitInterval(re *regexp.Regexp, text string) study.Measure {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return study.None()
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return study.None()
	}
	if v > 1 || m[2] == "%" {
		v /= 100
	}
	if v < 0 || v > 1 {
		return study.None()
	}
	return study.Some(v)
}

// extractPositive reads an unbounded positive error metric (RMSE, MAE).
func extractPositive(re *regexp.Regexp, text string) study.Measure {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return study.None()
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 {
		return study.None()
	}
	return study.Some(v)
}

// extractCount reads a sample-size style integer.
func extractCount(re *regexp.Regexp, text string) study.Measure {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return study.None()
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 1 {
		return study.None()
	}
	return study.Some(float64(v))
}
