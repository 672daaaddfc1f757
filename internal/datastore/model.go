package datastore

import (
	"time"

	"github.com/google/uuid"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/meta"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/screening"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// NewRun mints a run record with a fresh UUID.
func NewRun(inputPath string, flow screening.FlowCounts) *AnalysisRun {
	return &AnalysisRun{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		InputPath:    inputPath,
		Imported:     flow.Imported,
		Deduplicated: flow.Deduplicated,
		Screened:     flow.Screened,
		Included:     flow.Included,
	}
}

// FromTable converts the metrics table into persistable study rows.
func FromTable(table study.Table) []StudyRow {
	rows := make([]StudyRow, 0, len(table))
	for _, r := range table {
		rows = append(rows, StudyRow{
			StudyID:  r.StudyID,
			Title:    r.Title,
			Year:     measure(r.Year),
			R2:       measure(r.R2),
			RMSE:     measure(r.RMSE),
			MAE:      measure(r.MAE),
			Acc:      measure(r.Acc),
			Sens:     measure(r.Sens),
			Spec:     measure(r.Spec),
			N:        measure(r.N),
			AIMethod: r.AIMethod,
			Domain:   r.Domain,
			Scale:    r.Scale,
			Included: r.Included,
		})
	}
	return rows
}

// FlattenContinuous converts continuous pooling results into outcome rows.
func FlattenContinuous(results []meta.ContinuousResult) []PooledOutcome {
	out := make([]PooledOutcome, 0, len(results))
	for _, r := range results {
		out = append(out, PooledOutcome{
			Kind:   KindContinuous,
			Metric: r.Metric.String(),
			K:      r.K,
			Effect: opt(r.Effect),
			SE:     opt(r.SE),
			CILow:  opt(r.CILow),
			CIHigh: opt(r.CIHigh),
			PILow:  opt(r.PILow),
			PIHigh: opt(r.PIHigh),
			Tau2:   opt(r.Tau2),
			I2:     opt(r.I2),
			Q:      opt(r.Q),
			PHet:   opt(r.PHet),
			P:      opt(r.P),
			Note:   r.Note,
		})
	}
	return out
}

// FlattenDiagnostic converts the diagnostic result into one outcome row per
// pooled quantity.
func FlattenDiagnostic(r meta.DiagnosticResult) []PooledOutcome {
	row := func(metric string, est, lo, hi float64) PooledOutcome {
		return PooledOutcome{
			Kind:   KindDiagnostic,
			Metric: metric,
			K:      r.K,
			Effect: opt(est),
			CILow:  opt(lo),
			CIHigh: opt(hi),
			Note:   r.Note,
		}
	}
	return []PooledOutcome{
		row("sensitivity", r.Sens, r.SensCILow, r.SensCIHigh),
		row("specificity", r.Spec, r.SpecCILow, r.SpecCIHigh),
		row("auc", r.AUC, r.AUCCILow, r.AUCCIHigh),
	}
}

// FlattenSubgroups converts subgroup decompositions into outcome rows: one
// summary row per moderator carrying the Q decomposition, plus one row per
// pooled level.
func FlattenSubgroups(results []meta.SubgroupResult) []PooledOutcome {
	var out []PooledOutcome
	for _, r := range results {
		out = append(out, PooledOutcome{
			Kind:      KindSubgroup,
			Metric:    r.Metric.String(),
			Moderator: r.Moderator.String(),
			K:         r.NGroups,
			Q:         opt(r.QBetween),
			P:         opt(r.PBetween),
			Note:      r.Note,
		})
		for _, g := range r.Subgroups {
			out = append(out, PooledOutcome{
				Kind:      KindSubgroup,
				Metric:    r.Metric.String(),
				Moderator: r.Moderator.String(),
				Group:     g.Group,
				K:         g.K,
				Effect:    opt(g.Mean),
				SE:        opt(g.SE),
				CILow:     opt(g.CILow),
				CIHigh:    opt(g.CIHigh),
				Q:         opt(g.Q),
			})
		}
	}
	return out
}

// FlattenBias converts publication-bias results into outcome rows. The bias
// row carries the Egger intercept statistics; the paired trim-and-fill row
// carries the adjusted estimate when the correction ran.
func FlattenBias(results []meta.BiasResult) []PooledOutcome {
	var out []PooledOutcome
	for _, r := range results {
		out = append(out, PooledOutcome{
			Kind:   KindBias,
			Metric: r.Metric.String(),
			K:      r.K,
			Effect: opt(r.EggerIntercept),
			SE:     opt(r.EggerSE),
			P:      opt(r.EggerP),
			Note:   r.Note,
		})
		tf := PooledOutcome{
			Kind:   KindBias,
			Metric: r.Metric.String(),
			Group:  "trim_and_fill",
			K:      r.TrimFill.KOriginal,
			Note:   r.TrimFill.Note,
		}
		if r.TrimFill.Performed {
			tf.Effect = opt(r.TrimFill.AdjustedEffect)
			tf.K = r.TrimFill.KOriginal + r.TrimFill.KTrimmed
		}
		out = append(out, tf)
	}
	return out
}

func measure(m study.Measure) *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Val
	return &v
}

func opt(v float64) *float64 {
	if !meta.IsDefined(v) {
		return nil
	}
	return &v
}
