// Package descriptive tabulates the composition of the extracted study set:
// how many studies use each AI method, which fermentation domains and
// operating scales they cover, and how publications spread over time.
package descriptive

import (
	"sort"
	"strconv"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// Count is one frequency-table row.
type Count struct {
	Label string
	N     int
}

// Summary describes the extracted study set. Counts cover eligible rows
// only, sorted by descending frequency with ties broken alphabetically.
type Summary struct {
	Studies  int
	Eligible int
	Methods  []Count
	Domains  []Count
	Scales   []Count
	Years    []Count
	Reported map[study.Metric]int
}

// Summarize builds the descriptive summary for a metrics table.
func Summarize(table study.Table) Summary {
	eligible := table.Eligible()
	s := Summary{
		Studies:  len(table),
		Eligible: len(eligible),
		Reported: make(map[study.Metric]int, len(study.ContinuousMetrics)),
	}

	methods := make(map[string]int)
	domains := make(map[string]int)
	scales := make(map[string]int)
	years := make(map[string]int)
	for _, row := range eligible {
		methods[row.AIMethod]++
		domains[row.Domain]++
		scales[row.Scale]++
		if row.Year.Valid {
			years[yearLabel(row.Year.Val)]++
		}
		for _, m := range study.ContinuousMetrics {
			if row.Value(m).Valid {
				s.Reported[m]++
			}
		}
	}

	s.Methods = sortedCounts(methods)
	s.Domains = sortedCounts(domains)
	s.Scales = sortedCounts(scales)
	s.Years = sortedByLabel(years)
	return s
}

func yearLabel(y float64) string {
	return strconv.Itoa(int(y))
}

func sortedCounts(m map[string]int) []Count {
	out := countSlice(m)
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// sortedByLabel orders chronologically, which for four-digit year labels is
// plain string order.
func sortedByLabel(m map[string]int) []Count {
	out := countSlice(m)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func countSlice(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, N: n})
	}
	return out
}
