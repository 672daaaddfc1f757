package meta

import "math"

// PredictInterval computes the 95% prediction interval for a pooled effect.
// Unlike the confidence interval it uses the Student-t quantile with k-2
// degrees of freedom and widens the standard error by the between-study
// variance, so it always contains the confidence interval. With fewer than
// three studies the interval is Undefined.
func PredictInterval(effect, se, tau2 float64, k int) PredictionInterval {
	if k < minStudies {
		return PredictionInterval{
			Low:  Undefined,
			High: Undefined,
			Note: noteInsufficient,
		}
	}
	t := tQuantile975(k - 2)
	predSE := math.Sqrt(se*se + tau2)
	return PredictionInterval{
		Low:  effect - t*predSE,
		High: effect + t*predSE,
	}
}
