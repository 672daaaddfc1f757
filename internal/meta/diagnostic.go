package meta

import (
	"math"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// noteLogitPooling documents the variance proxy carried by diagnostic
// pooling results and the simplified AUC.
const noteLogitPooling = "Logit-scale inverse-variance pooling with variance proxy 1/(k*p*(1-p)); AUC approximated as mean of pooled sensitivity and specificity"

// PoolDiagnostic pools sensitivity/specificity pairs on the logit scale with
// inverse-variance weights. Only rows flagged for pooling that report both
// proportions contribute.
// Confidence intervals are computed on the logit scale and back-transformed,
// which makes them asymmetric on the probability scale; that is expected.
// The AUC is the arithmetic mean of the pooled proportions, a deliberate
// simplification rather than an sROC-derived area.
func PoolDiagnostic(table study.Table) DiagnosticResult {
	var sens, spec []float64
	for _, r := range table.Eligible() {
		if r.Sens.Valid && r.Spec.Valid {
			sens = append(sens, r.Sens.Val)
			spec = append(spec, r.Spec.Val)
		}
	}
	k := len(sens)
	if k < minStudies {
		return insufficientDiagnostic(k)
	}

	sensPooled, sensLow, sensHigh, sensSE := poolLogit(sens, k)
	specPooled, specLow, specHigh, specSE := poolLogit(spec, k)

	// Quadrature combination of the two logit-scale standard errors,
	// halved to match the averaged estimate.
	auc := (sensPooled + specPooled) / 2
	aucSE := math.Sqrt(sensSE*sensSE+specSE*specSE) / 2

	return DiagnosticResult{
		K:          k,
		Sens:       sensPooled,
		SensCILow:  sensLow,
		SensCIHigh: sensHigh,
		Spec:       specPooled,
		SpecCILow:  specLow,
		SpecCIHigh: specHigh,
		AUC:        auc,
		AUCCILow:   clamp(auc-zCrit95*aucSE, 0, 1),
		AUCCIHigh:  clamp(auc+zCrit95*aucSE, 0, 1),
		Note:       noteLogitPooling,
	}
}

// poolLogit pools one arm of proportions on the log-odds scale and returns
// the back-transformed estimate, its 95% CI bounds, and the logit-scale
// standard error. Proportions are clamped away from 0 and 1 first so the
// transform stays finite.
func poolLogit(props []float64, k int) (est, ciLow, ciHigh, seLogit float64) {
	var sumW, sumWL float64
	for _, p := range props {
		p = clamp(p, logitClampLow, logitClampHigh)
		// Variance proxy standing in for the true sampling variance;
		// per-study N is not reliably extractable from abstracts.
		v := 1 / (float64(k) * p * (1 - p))
		w := 1 / v
		sumW += w
		sumWL += w * logit(p)
	}
	pooled := sumWL / sumW
	seLogit = math.Sqrt(1 / sumW)
	return invLogit(pooled), invLogit(pooled - zCrit95*seLogit), invLogit(pooled + zCrit95*seLogit), seLogit
}

func insufficientDiagnostic(k int) DiagnosticResult {
	return DiagnosticResult{
		K:          k,
		Sens:       Undefined,
		SensCILow:  Undefined,
		SensCIHigh: Undefined,
		Spec:       Undefined,
		SpecCILow:  Undefined,
		SpecCIHigh: Undefined,
		AUC:        Undefined,
		AUCCILow:   Undefined,
		AUCCIHigh:  Undefined,
		Note:       noteInsufficient,
	}
}
