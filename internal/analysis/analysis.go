// Package analysis orchestrates the statistical engine: it fans the metrics
// table out to every configured analyzer, collects the outcomes in a fixed
// report order, and runs the full import-to-report pipeline.
package analysis

import (
	"log/slog"
	"sync"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/descriptive"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/grade"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/meta"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/screening"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// Results aggregates every analysis outcome of one run. Slices are ordered
// deterministically: continuous and bias results follow
// study.ContinuousMetrics, subgroup results follow the configured moderator
// order.
type Results struct {
	Descriptive descriptive.Summary
	Flow        screening.FlowCounts
	Continuous  []meta.ContinuousResult
	Diagnostic  meta.DiagnosticResult
	Subgroups   []meta.SubgroupResult
	Bias        []meta.BiasResult
	Grades      []grade.Assessment
}

// RunAnalyses executes every analysis over the metrics table. The analyzers
// share the table read-only, so they run concurrently; each goroutine writes
// only its own result slot.
func RunAnalyses(table study.Table, settings *conf.AnalysisSettings) *Results {
	moderators := resolveModerators(settings)

	r := &Results{
		Descriptive: descriptive.Summarize(table),
		Continuous:  make([]meta.ContinuousResult, len(study.ContinuousMetrics)),
		Bias:        make([]meta.BiasResult, len(study.ContinuousMetrics)),
		Subgroups:   make([]meta.SubgroupResult, len(moderators)*len(study.ContinuousMetrics)),
	}

	var wg sync.WaitGroup
	for i, metric := range study.ContinuousMetrics {
		wg.Add(2)
		go func(i int, m study.Metric) {
			defer wg.Done()
			r.Continuous[i] = meta.PoolContinuous(table, m)
		}(i, metric)
		go func(i int, m study.Metric) {
			defer wg.Done()
			r.Bias[i] = meta.AssessBias(table, m)
		}(i, metric)

		for j, mod := range moderators {
			wg.Add(1)
			go func(slot int, m study.Metric, mod study.Moderator) {
				defer wg.Done()
				r.Subgroups[slot] = meta.AnalyzeSubgroups(table, m, mod)
			}(i*len(moderators)+j, metric, mod)
		}
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Diagnostic = meta.PoolDiagnostic(table)
	}()
	wg.Wait()

	r.Grades = gradeOutcomes(r)
	return r
}

// resolveModerators maps the configured moderator labels, dropping unknown
// ones with a warning. Validation normally rejects unknown labels earlier.
func resolveModerators(settings *conf.AnalysisSettings) []study.Moderator {
	labels := []string{"ai_method", "scale"}
	if settings != nil && len(settings.Moderators) > 0 {
		labels = settings.Moderators
	}
	out := make([]study.Moderator, 0, len(labels))
	for _, label := range labels {
		m, ok := study.ParseModerator(label)
		if !ok {
			slog.Warn("unknown moderator skipped", "moderator", label)
			continue
		}
		out = append(out, m)
	}
	return out
}

// gradeOutcomes assigns certainty to each pooled outcome, pairing every
// continuous result with its publication-bias diagnostics.
func gradeOutcomes(r *Results) []grade.Assessment {
	out := make([]grade.Assessment, 0, len(r.Continuous)+1)
	for i, cont := range r.Continuous {
		out = append(out, grade.AssessContinuous(cont, r.Bias[i]))
	}
	out = append(out, grade.AssessDiagnostic(r.Diagnostic))
	return out
}
