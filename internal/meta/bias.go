package meta

import (
	"math"
	"sort"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

const (
	noteEgger          = "Egger regression with a shared SE proxy sqrt(s2/k) for every study"
	noteTrimFillSkip   = "Trim-and-fill not performed (k < 10)"
	noteTrimFillLabel  = "Simplified mirror-imputation heuristic, not the Duval-Tweedie iterative estimator"
	noteEggerDegener   = "Degenerate regression: intercept standard error is zero, test statistic undefined"
	collinearTolerance = 1e-12
)

// AssessBias runs Egger's regression-based asymmetry test on one
// continuous metric, and when at least ten studies contribute, a simplified
// trim-and-fill correction. A significant intercept (p < 0.05) signals
// funnel-plot asymmetry consistent with small-study effects; the result only
// reports it, it never auto-corrects the pooled estimate.
func AssessBias(table study.Table, metric study.Metric) BiasResult {
	values, _ := table.Eligible().MetricValues(metric)
	k := len(values)
	if k < minStudies {
		return insufficientBias(metric, k)
	}

	// One overall variance proxy for every study; the floor keeps a
	// constant series from dividing by zero.
	s2 := flooredVariance(values)
	se := math.Sqrt(s2 / float64(k))

	funnel := FunnelData{
		Effect:    make([]float64, k),
		SE:        make([]float64, k),
		Precision: make([]float64, k),
	}
	y := make([]float64, k) // standardized effects
	x := make([]float64, k) // precisions
	for i, v := range values {
		funnel.Effect[i] = v
		funnel.SE[i] = se
		funnel.Precision[i] = 1 / se
		y[i] = v / se
		x[i] = 1 / se
	}

	intercept, interceptSE, slopeOK := eggerFit(x, y)

	res := BiasResult{
		Metric:         metric,
		K:              k,
		EggerIntercept: intercept,
		EggerSE:        interceptSE,
		Funnel:         funnel,
		Note:           noteEgger,
	}
	if interceptSE > 0 {
		res.EggerT = intercept / interceptSE
		res.EggerP = tTwoSided(res.EggerT, k-2)
	} else {
		res.EggerT = Undefined
		res.EggerP = Undefined
		res.Note = noteEggerDegener
	}
	if !slopeOK {
		res.Note = noteEggerDegener
	}

	res.TrimFill = trimAndFill(values, k)
	return res
}

// eggerFit fits y = b0 + b1*x by ordinary least squares and returns the
// intercept, its standard error, and whether the predictor carried any
// variance. With a constant predictor (the shared-SE design always produces
// one when values are identical) the normal equations are singular; the
// minimum-norm least-squares solution is used instead, which drives the
// intercept toward zero rather than crashing.
func eggerFit(x, y []float64) (intercept, interceptSE float64, ok bool) {
	n := float64(len(x))
	meanX := sum(x) / n
	meanY := sum(y) / n

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	var slope float64
	if sxx > collinearTolerance {
		slope = sxy / sxx
		intercept = meanY - slope*meanX
		ok = true
	} else {
		// Minimum-norm solution for the rank-deficient design
		// [1, c]: beta = (ybar/(1+c^2)) * [1, c].
		c := meanX
		intercept = meanY / (1 + c*c)
		slope = c * meanY / (1 + c*c)
		ok = false
	}

	// Residual variance with df = n-2.
	df := len(x) - 2
	if df < 1 {
		return intercept, 0, ok
	}
	var rss float64
	for i := range x {
		r := y[i] - intercept - slope*x[i]
		rss += r * r
	}
	s2 := rss / float64(df)

	if sxx > collinearTolerance {
		interceptSE = math.Sqrt(s2 * (1/n + meanX*meanX/sxx))
	} else if s2 > 0 {
		interceptSE = math.Sqrt(s2 / n)
	}
	return intercept, interceptSE, ok
}

// trimAndFill applies the simplified small-study-effect correction: count
// studies above and below the mean, treat the imbalance as the number of
// missing studies, mirror the most extreme values from the abundant side
// across the mean, and recompute it. Explicitly not Duval & Tweedie's
// iterative estimator.
func trimAndFill(values []float64, k int) TrimFill {
	if k < trimFillMinStudies {
		return TrimFill{Note: noteTrimFillSkip}
	}

	mean := sum(values) / float64(k)
	var above, below []float64
	for _, v := range values {
		switch {
		case v > mean:
			above = append(above, v)
		case v < mean:
			below = append(below, v)
		}
	}

	missing := len(above) - len(below)
	if missing < 0 {
		missing = -missing
	}

	tf := TrimFill{
		Performed:      true,
		KOriginal:      k,
		KTrimmed:       missing,
		OriginalEffect: mean,
		AdjustedEffect: mean,
		Note:           noteTrimFillLabel,
	}
	if missing == 0 {
		return tf
	}

	// Mirror the most extreme values of the abundant side.
	source := above
	if len(below) > len(above) {
		source = below
	}
	sorted := make([]float64, len(source))
	copy(sorted, source)
	sort.Slice(sorted, func(i, j int) bool {
		return math.Abs(sorted[i]-mean) > math.Abs(sorted[j]-mean)
	})
	if missing > len(sorted) {
		missing = len(sorted)
		tf.KTrimmed = missing
	}

	total := sum(values)
	for _, v := range sorted[:missing] {
		total += 2*mean - v
	}
	tf.AdjustedEffect = total / float64(k+missing)
	return tf
}

func insufficientBias(metric study.Metric, k int) BiasResult {
	return BiasResult{
		Metric:         metric,
		K:              k,
		EggerIntercept: Undefined,
		EggerSE:        Undefined,
		EggerT:         Undefined,
		EggerP:         Undefined,
		TrimFill:       TrimFill{Note: noteTrimFillSkip},
		Note:           noteInsufficient,
	}
}
