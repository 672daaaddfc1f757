// Package study defines the record types that flow through the review
// pipeline: raw bibliographic imports, deduplicated and screened records, and
// the normalized per-study metrics table consumed by the statistical engine.
// Each stage is a strict transform of the previous one; records are never
// mutated in place.
package study

import "fmt"

// Measure is an optional numeric field. Valid reports whether a value is
// present; absent values are modelled explicitly instead of using NaN as a
// sentinel.
type Measure struct {
	Val   float64
	Valid bool
}

// Some returns a present Measure holding v.
func Some(v float64) Measure {
	return Measure{Val: v, Valid: true}
}

// None returns an absent Measure.
func None() Measure {
	return Measure{}
}

// Or returns the held value when present, otherwise fallback.
func (m Measure) Or(fallback float64) float64 {
	if m.Valid {
		return m.Val
	}
	return fallback
}

// Metric enumerates the continuous performance metrics the engine can pool.
// A closed enum replaces string-keyed column selection so that an unknown
// metric is a compile-time error rather than a runtime lookup failure.
type Metric int

const (
	MetricR2 Metric = iota
	MetricRMSE
	MetricMAE
)

// String returns the report label for the metric.
func (m Metric) String() string {
	switch m {
	case MetricR2:
		return "R2"
	case MetricRMSE:
		return "RMSE"
	case MetricMAE:
		return "MAE"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ContinuousMetrics lists every metric eligible for continuous pooling, in
// report order.
var ContinuousMetrics = []Metric{MetricR2, MetricRMSE, MetricMAE}

// Moderator enumerates the categorical fields usable for subgroup analysis.
type Moderator int

const (
	ModeratorAIMethod Moderator = iota
	ModeratorDomain
	ModeratorScale
)

// String returns the report label for the moderator.
func (m Moderator) String() string {
	switch m {
	case ModeratorAIMethod:
		return "ai_method"
	case ModeratorDomain:
		return "domain"
	case ModeratorScale:
		return "scale"
	default:
		return fmt.Sprintf("Moderator(%d)", int(m))
	}
}

// ParseModerator maps a configuration label to its moderator.
func ParseModerator(label string) (Moderator, bool) {
	switch label {
	case "ai_method":
		return ModeratorAIMethod, true
	case "domain":
		return ModeratorDomain, true
	case "scale":
		return ModeratorScale, true
	default:
		return 0, false
	}
}

// RawRecord is a single bibliographic record as parsed from an export file,
// before deduplication or screening.
type RawRecord struct {
	Title    string
	Abstract string
	Authors  []string
	Journal  string
	DOI      string
	Year     int
	Keywords []string
	Source   string // file the record was parsed from
}

// Record is a deduplicated bibliographic record. Key is the normalized
// deduplication key the record won its slot with.
type Record struct {
	RawRecord
	Key string
}

// ScreenedRecord carries the eligibility verdict for a deduplicated record.
// Reasons lists every screening rule that fired, included or not.
type ScreenedRecord struct {
	Record
	Included bool
	Reasons  []string
}

// MetricsRow is one normalized per-study row of the metrics table. Numeric
// fields are explicit optionals; categorical fields are non-empty strings
// assigned by extraction ("unspecified" when classification found nothing).
// Proportion fields (Acc, Sens, Spec) are in (0,1) after normalization.
// Rows are created once by extraction and read-only afterwards.
type MetricsRow struct {
	StudyID  string
	Title    string
	Year     Measure
	R2       Measure
	RMSE     Measure
	MAE      Measure
	Acc      Measure
	Sens     Measure
	Spec     Measure
	N        Measure
	AIMethod string
	Domain   string
	Scale    string
	Included bool // included_meta_flag: row is eligible for pooling
}

// Value returns the row's value for the given continuous metric.
func (r MetricsRow) Value(m Metric) Measure {
	switch m {
	case MetricR2:
		return r.R2
	case MetricRMSE:
		return r.RMSE
	case MetricMAE:
		return r.MAE
	default:
		return None()
	}
}

// Group returns the row's label for the given moderator.
func (r MetricsRow) Group(m Moderator) string {
	switch m {
	case ModeratorAIMethod:
		return r.AIMethod
	case ModeratorDomain:
		return r.Domain
	case ModeratorScale:
		return r.Scale
	default:
		return ""
	}
}

// Table is the in-memory metrics table shared read-only by all analyzers.
type Table []MetricsRow

// Eligible returns the rows flagged for meta-analysis.
func (t Table) Eligible() Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if r.Included {
			out = append(out, r)
		}
	}
	return out
}

// MetricValues collects the present values of a continuous metric, preserving
// row order. The paired row indices are returned so callers can map values
// back to studies.
func (t Table) MetricValues(m Metric) ([]float64, []int) {
	vals := make([]float64, 0, len(t))
	idx := make([]int, 0, len(t))
	for i, r := range t {
		if v := r.Value(m); v.Valid {
			vals = append(vals, v.Val)
			idx = append(idx, i)
		}
	}
	return vals, idx
}
