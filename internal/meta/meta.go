// Package meta implements the statistical estimation engine of the review
// pipeline: DerSimonian-Laird random-effects pooling of continuous metrics,
// logit-scale pooling of diagnostic accuracy, subgroup heterogeneity
// decomposition, and publication-bias diagnostics. Every analyzer is a pure
// function over the read-only metrics table; insufficient data is a reported
// result, never an error.
package meta

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Undefined is the explicit marker for a statistic that could not be
// computed. It is assigned deliberately (never produced by stray arithmetic)
// and reporters render it as NA. Check with IsDefined.
var Undefined = math.NaN()

// IsDefined reports whether v holds a computed statistic rather than the
// Undefined marker.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

const (
	// minStudies is the smallest k a pooled analysis will run on.
	minStudies = 3

	// trimFillMinStudies is the smallest k the trim-and-fill heuristic
	// will run on.
	trimFillMinStudies = 10

	// varianceFloor replaces a zero or degenerate sample variance. A
	// numerical floor against division by zero, not a statistical
	// assumption.
	varianceFloor = 0.01

	// logitClampLow and logitClampHigh bound proportions before the logit
	// transform so that 0 and 1 cannot map to infinity.
	logitClampLow  = 0.001
	logitClampHigh = 0.999

	// zCrit95 is the two-sided 95% normal critical value.
	zCrit95 = 1.96
)

// noteInsufficient is the note carried by every result returned below the
// study-count threshold.
const noteInsufficient = "Insufficient data"

// sampleVariance returns the unbiased sample variance of xs, or 0 when it is
// not computable.
func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	v := stat.Variance(xs, nil)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// flooredVariance applies the degenerate-variance floor.
func flooredVariance(xs []float64) float64 {
	v := sampleVariance(xs)
	if v <= 0 {
		return varianceFloor
	}
	return v
}

// chiSquareSurvival returns 1 - chi2CDF(q, df). Non-positive q or df yields
// the boundary values rather than propagating NaN.
func chiSquareSurvival(q float64, df int) float64 {
	if df < 1 {
		return Undefined
	}
	if q <= 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return 1 - dist.CDF(q)
}

// normalTwoSided returns the two-sided p-value for a standard normal z.
func normalTwoSided(z float64) float64 {
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
}

// tTwoSided returns the two-sided p-value for a Student-t statistic with df
// degrees of freedom.
func tTwoSided(t float64, df int) float64 {
	if df < 1 {
		return Undefined
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// tQuantile975 returns the 0.975 quantile of the Student-t distribution with
// df degrees of freedom.
func tQuantile975(df int) float64 {
	if df < 1 {
		return Undefined
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return dist.Quantile(0.975)
}

// logit maps a proportion to the log-odds scale.
func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// invLogit maps a log-odds value back to the probability scale.
func invLogit(x float64) float64 {
	return math.Exp(x) / (1 + math.Exp(x))
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
