package meta

import (
	"math"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// noteSubgroup documents that the decomposition is method-of-moments, not a
// mixed-effects subgroup model.
const noteSubgroup = "Method-of-moments heterogeneity decomposition; not a mixed-effects subgroup model"

// AnalyzeSubgroups partitions a continuous metric by a categorical moderator
// and decomposes total heterogeneity into within- and between-group
// components with a chi-square test. Group order follows first occurrence in
// the table. Levels with fewer than two studies are excluded from pooling but
// still counted in NGroups and therefore in DFBetween; that counting is
// intentional and preserved from the original analysis.
func AnalyzeSubgroups(table study.Table, metric study.Metric, moderator study.Moderator) SubgroupResult {
	// Collect present values with their group labels from rows flagged for
	// pooling, preserving order.
	var values []float64
	var labels []string
	for _, r := range table.Eligible() {
		if v := r.Value(metric); v.Valid {
			values = append(values, v.Val)
			labels = append(labels, r.Group(moderator))
		}
	}

	// Unique labels in first-occurrence order.
	var order []string
	byGroup := make(map[string][]float64)
	for i, lbl := range labels {
		if _, seen := byGroup[lbl]; !seen {
			order = append(order, lbl)
		}
		byGroup[lbl] = append(byGroup[lbl], values[i])
	}

	res := SubgroupResult{
		Metric:    metric,
		Moderator: moderator,
		NGroups:   len(order),
		Note:      noteSubgroup,
	}

	var qWithin float64
	for _, lbl := range order {
		vals := byGroup[lbl]
		kg := len(vals)
		if kg < 2 {
			// Too small to pool; the label still occupies a slot in
			// NGroups above.
			continue
		}
		mean := sum(vals) / float64(kg)
		variance := sampleVariance(vals)
		se := math.Sqrt(variance / float64(kg))
		qGrp := float64(kg-1) * variance
		qWithin += qGrp
		res.Subgroups = append(res.Subgroups, SubgroupStats{
			Group:  lbl,
			K:      kg,
			Mean:   mean,
			SE:     se,
			CILow:  mean - zCrit95*se,
			CIHigh: mean + zCrit95*se,
			Q:      qGrp,
		})
	}

	// Total heterogeneity about the grand mean over ALL valid values,
	// including those in skipped levels.
	var qTotal float64
	if len(values) > 0 {
		grand := sum(values) / float64(len(values))
		for _, v := range values {
			d := v - grand
			qTotal += d * d
		}
	}

	qBetween := qTotal - qWithin
	res.QWithin = qWithin
	res.QBetween = qBetween
	// Stored as the sum of its parts so the identity holds exactly.
	res.QTotal = qWithin + qBetween
	res.DFBetween = res.NGroups - 1
	res.PBetween = chiSquareSurvival(qBetween, res.DFBetween)
	return res
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
