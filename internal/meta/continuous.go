package meta

import (
	"math"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// noteEqualVariance documents the variance proxy carried by every continuous
// pooling result. Abstracts rarely report per-study standard errors, so each
// study's variance is approximated by the pooled sample variance divided by
// the study count.
const noteEqualVariance = "Per-study variance approximated as pooled sample variance / k; abstracts rarely report standard errors"

// PoolContinuous performs a DerSimonian-Laird random-effects meta-analysis of
// one continuous metric across the table. Rows not flagged for pooling and
// rows with the metric missing are dropped. With fewer than three
// contributing studies the result carries only K and the insufficiency note.
func PoolContinuous(table study.Table, metric study.Metric) ContinuousResult {
	values, _ := table.Eligible().MetricValues(metric)
	k := len(values)

	if k < minStudies {
		return insufficientContinuous(metric, k)
	}

	// Equal-variance proxy: no per-study sampling variances are available
	// from abstract text, so every study shares s2/k.
	s2 := flooredVariance(values)
	vi := s2 / float64(k)

	// Fixed-effect pooling.
	var sumW, sumWY, sumW2 float64
	w := 1 / vi
	for _, y := range values {
		sumW += w
		sumWY += w * y
		sumW2 += w * w
	}
	fixed := sumWY / sumW

	// Cochran's Q and derived heterogeneity statistics.
	var q float64
	for _, y := range values {
		d := y - fixed
		q += w * d * d
	}
	df := k - 1
	pHet := chiSquareSurvival(q, df)

	i2 := 0.0
	if q > 0 {
		i2 = math.Max(0, 100*(q-float64(df))/q)
	}

	// DerSimonian-Laird between-study variance.
	tau2 := 0.0
	if c := sumW - sumW2/sumW; c > 0 {
		tau2 = math.Max(0, (q-float64(df))/c)
	}

	// Random-effects re-weighting.
	var sumWR, sumWRY float64
	wr := 1 / (vi + tau2)
	for _, y := range values {
		sumWR += wr
		sumWRY += wr * y
	}
	effect := sumWRY / sumWR
	se := math.Sqrt(1 / sumWR)

	pi := PredictInterval(effect, se, tau2, k)

	return ContinuousResult{
		Metric: metric,
		Model:  ModelDerSimonianLaird,
		K:      k,
		Effect: effect,
		SE:     se,
		CILow:  effect - zCrit95*se,
		CIHigh: effect + zCrit95*se,
		PILow:  pi.Low,
		PIHigh: pi.High,
		Tau2:   tau2,
		I2:     i2,
		Q:      q,
		PHet:   pHet,
		P:      normalTwoSided(effect / se),
		Note:   noteEqualVariance,
	}
}

func insufficientContinuous(metric study.Metric, k int) ContinuousResult {
	return ContinuousResult{
		Metric: metric,
		Model:  ModelDerSimonianLaird,
		K:      k,
		Effect: Undefined,
		SE:     Undefined,
		CILow:  Undefined,
		CIHigh: Undefined,
		PILow:  Undefined,
		PIHigh: Undefined,
		Tau2:   Undefined,
		I2:     Undefined,
		Q:      Undefined,
		PHet:   Undefined,
		P:      Undefined,
		Note:   noteInsufficient,
	}
}
