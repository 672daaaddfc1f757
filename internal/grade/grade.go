// Package grade assigns a GRADE-style certainty level to each pooled
// outcome. The assessment is deterministic: it starts at high certainty and
// steps down one level per concern found in the engine outputs.
package grade

import (
	"fmt"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/meta"
)

// Level is a GRADE certainty level.
type Level string

const (
	High     Level = "high"
	Moderate Level = "moderate"
	Low      Level = "low"
	VeryLow  Level = "very_low"
)

// Downgrade thresholds. Each concern costs one level.
const (
	minPrecisionStudies = 5
	seriousI2           = 50.0
	verySeriousI2       = 75.0
	biasAlpha           = 0.05
)

// Assessment is the certainty verdict for one outcome.
type Assessment struct {
	Outcome   string
	Level     Level
	Downgrade int
	Reasons   []string
}

// AssessContinuous grades a continuous pooled outcome together with its
// publication-bias diagnostics.
func AssessContinuous(cont meta.ContinuousResult, bias meta.BiasResult) Assessment {
	a := Assessment{Outcome: cont.Metric.String()}
	if cont.Insufficient() {
		a.Level = VeryLow
		a.Reasons = append(a.Reasons, "too few studies to pool")
		return a
	}

	var steps int
	if cont.K < minPrecisionStudies {
		steps++
		a.Reasons = append(a.Reasons, fmt.Sprintf("imprecision: only %d studies", cont.K))
	}
	if meta.IsDefined(cont.I2) {
		switch {
		case cont.I2 > verySeriousI2:
			steps += 2
			a.Reasons = append(a.Reasons, fmt.Sprintf("very serious inconsistency: I2 = %.1f%%", cont.I2))
		case cont.I2 > seriousI2:
			steps++
			a.Reasons = append(a.Reasons, fmt.Sprintf("serious inconsistency: I2 = %.1f%%", cont.I2))
		}
	}
	if meta.IsDefined(bias.EggerP) && bias.EggerP < biasAlpha {
		steps++
		a.Reasons = append(a.Reasons, fmt.Sprintf("possible publication bias: Egger p = %.3f", bias.EggerP))
	}

	a.Downgrade = steps
	a.Level = level(steps)
	if len(a.Reasons) == 0 {
		a.Reasons = append(a.Reasons, "no serious concerns")
	}
	return a
}

// AssessDiagnostic grades the pooled diagnostic-accuracy outcome.
func AssessDiagnostic(diag meta.DiagnosticResult) Assessment {
	a := Assessment{Outcome: "diagnostic_accuracy"}
	if diag.Insufficient() {
		a.Level = VeryLow
		a.Reasons = append(a.Reasons, "too few studies to pool")
		return a
	}

	var steps int
	if diag.K < minPrecisionStudies {
		steps++
		a.Reasons = append(a.Reasons, fmt.Sprintf("imprecision: only %d studies", diag.K))
	}
	// The logit pooling uses a sample-size variance proxy rather than true
	// confusion-matrix counts, an indirectness concern for every pooled set.
	steps++
	a.Reasons = append(a.Reasons, "indirectness: variance approximated from sample size")

	a.Downgrade = steps
	a.Level = level(steps)
	return a
}

func level(steps int) Level {
	switch {
	case steps <= 0:
		return High
	case steps == 1:
		return Moderate
	case steps == 2:
		return Low
	default:
		return VeryLow
	}
}
