package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/descriptive"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/grade"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/meta"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/screening"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// WriteFlow renders the screening funnel.
func WriteFlow(w io.Writer, format Format, flow screening.FlowCounts) error {
	header := []string{"stage", "records"}
	rows := [][]string{
		{"imported", strconv.Itoa(flow.Imported)},
		{"after_deduplication", strconv.Itoa(flow.Deduplicated)},
		{"screened", strconv.Itoa(flow.Screened)},
		{"included", strconv.Itoa(flow.Included)},
	}
	return render(w, format, header, rows)
}

// WriteDescriptive renders the study-set composition tables.
func WriteDescriptive(w io.Writer, format Format, s descriptive.Summary) error {
	header := []string{"dimension", "label", "n"}
	rows := [][]string{
		{"studies", "total", strconv.Itoa(s.Studies)},
		{"studies", "eligible", strconv.Itoa(s.Eligible)},
	}
	appendCounts := func(dimension string, counts []descriptive.Count) {
		for _, c := range counts {
			rows = append(rows, []string{dimension, c.Label, strconv.Itoa(c.N)})
		}
	}
	appendCounts("ai_method", s.Methods)
	appendCounts("domain", s.Domains)
	appendCounts("scale", s.Scales)
	appendCounts("year", s.Years)
	for _, m := range study.ContinuousMetrics {
		rows = append(rows, []string{"reported", m.String(), strconv.Itoa(s.Reported[m])})
	}
	return render(w, format, header, rows)
}

// WriteContinuous renders the random-effects pooling results.
func WriteContinuous(w io.Writer, format Format, results []meta.ContinuousResult) error {
	header := []string{
		"metric", "model", "k", "effect", "se", "ci_low", "ci_high",
		"pi_low", "pi_high", "tau2", "i2", "q", "p_het", "p", "note",
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Metric.String(), r.Model, strconv.Itoa(r.K),
			num(r.Effect), num(r.SE), num(r.CILow), num(r.CIHigh),
			num(r.PILow), num(r.PIHigh), num(r.Tau2), num(r.I2),
			num(r.Q), pvalue(r.PHet), pvalue(r.P), r.Note,
		})
	}
	return render(w, format, header, rows)
}

// WriteDiagnostic renders the pooled diagnostic accuracy.
func WriteDiagnostic(w io.Writer, format Format, r meta.DiagnosticResult) error {
	header := []string{"measure", "k", "estimate", "ci_low", "ci_high", "note"}
	rows := [][]string{
		{"sensitivity", strconv.Itoa(r.K), num(r.Sens), num(r.SensCILow), num(r.SensCIHigh), r.Note},
		{"specificity", strconv.Itoa(r.K), num(r.Spec), num(r.SpecCILow), num(r.SpecCIHigh), r.Note},
		{"auc", strconv.Itoa(r.K), num(r.AUC), num(r.AUCCILow), num(r.AUCCIHigh), r.Note},
	}
	return render(w, format, header, rows)
}

// WriteSubgroups renders the heterogeneity decompositions. Each moderator
// contributes its per-level summaries plus one between-groups row.
func WriteSubgroups(w io.Writer, format Format, results []meta.SubgroupResult) error {
	header := []string{
		"metric", "moderator", "group", "k", "mean", "se", "ci_low", "ci_high",
		"q", "p_between", "note",
	}
	var rows [][]string
	for _, r := range results {
		for _, g := range r.Subgroups {
			rows = append(rows, []string{
				r.Metric.String(), r.Moderator.String(), g.Group, strconv.Itoa(g.K),
				num(g.Mean), num(g.SE), num(g.CILow), num(g.CIHigh),
				num(g.Q), "", "",
			})
		}
		rows = append(rows, []string{
			r.Metric.String(), r.Moderator.String(), "(between)", strconv.Itoa(r.NGroups),
			"", "", "", "",
			num(r.QBetween), pvalue(r.PBetween), r.Note,
		})
	}
	return render(w, format, header, rows)
}

// WriteBias renders Egger's test and the trim-and-fill correction.
func WriteBias(w io.Writer, format Format, results []meta.BiasResult) error {
	header := []string{
		"metric", "k", "egger_intercept", "egger_se", "egger_t", "egger_p",
		"k_imputed", "adjusted_effect", "note",
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		adjusted := missing
		imputed := "0"
		if r.TrimFill.Performed {
			adjusted = num(r.TrimFill.AdjustedEffect)
			imputed = strconv.Itoa(r.TrimFill.KTrimmed)
		}
		note := r.Note
		if note == "" {
			note = r.TrimFill.Note
		}
		rows = append(rows, []string{
			r.Metric.String(), strconv.Itoa(r.K),
			num(r.EggerIntercept), num(r.EggerSE), num(r.EggerT), pvalue(r.EggerP),
			imputed, adjusted, note,
		})
	}
	return render(w, format, header, rows)
}

// WriteFunnel renders the per-study funnel points for one metric.
func WriteFunnel(w io.Writer, format Format, r meta.BiasResult) error {
	header := []string{"effect", "se", "precision"}
	rows := make([][]string, 0, len(r.Funnel.Effect))
	for i := range r.Funnel.Effect {
		rows = append(rows, []string{
			num(r.Funnel.Effect[i]), num(r.Funnel.SE[i]), num(r.Funnel.Precision[i]),
		})
	}
	return render(w, format, header, rows)
}

// WriteGrades renders the certainty assessments.
func WriteGrades(w io.Writer, format Format, assessments []grade.Assessment) error {
	header := []string{"outcome", "certainty", "downgraded", "reasons"}
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, []string{
			a.Outcome, string(a.Level), strconv.Itoa(a.Downgrade),
			strings.Join(a.Reasons, "; "),
		})
	}
	return render(w, format, header, rows)
}

// Section writes a titled separator before a stdout report block.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}
