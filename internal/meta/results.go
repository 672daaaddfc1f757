package meta

import (
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// ModelDerSimonianLaird identifies the random-effects model used for
// continuous pooling.
const ModelDerSimonianLaird = "DerSimonian-Laird"

// ContinuousResult is the outcome of a random-effects meta-analysis of one
// continuous metric. When K < 3 every statistic is Undefined and Note
// explains the insufficiency. The record owns its values; it holds no
// reference into the source table.
type ContinuousResult struct {
	Metric study.Metric
	Model  string
	K      int
	Effect float64
	SE     float64
	CILow  float64
	CIHigh float64
	PILow  float64
	PIHigh float64
	Tau2   float64
	I2     float64
	Q      float64
	PHet   float64
	P      float64
	Note   string
}

// Insufficient reports whether the analysis was skipped for lack of studies.
func (r ContinuousResult) Insufficient() bool {
	return r.K < minStudies
}

// PredictionInterval is the Student-t based interval expected to contain the
// true effect of a new study.
type PredictionInterval struct {
	Low  float64
	High float64
	Note string
}

// DiagnosticResult is the outcome of logit-scale pooling of paired
// sensitivity/specificity values, with an approximate AUC.
type DiagnosticResult struct {
	K          int
	Sens       float64
	SensCILow  float64
	SensCIHigh float64
	Spec       float64
	SpecCILow  float64
	SpecCIHigh float64
	AUC        float64
	AUCCILow   float64
	AUCCIHigh  float64
	Note       string
}

// Insufficient reports whether the analysis was skipped for lack of studies.
func (r DiagnosticResult) Insufficient() bool {
	return r.K < minStudies
}

// SubgroupStats holds the pooled summary of one moderator level.
type SubgroupStats struct {
	Group  string
	K      int
	Mean   float64
	SE     float64
	CILow  float64
	CIHigh float64
	Q      float64
}

// SubgroupResult is a method-of-moments decomposition of total heterogeneity
// into within- and between-group components. QTotal = QWithin + QBetween by
// construction. NGroups counts every unique label found, including levels
// skipped from pooling because they held fewer than two studies; DFBetween
// follows that count.
type SubgroupResult struct {
	Metric    study.Metric
	Moderator study.Moderator
	NGroups   int
	Subgroups []SubgroupStats
	QWithin   float64
	QBetween  float64
	QTotal    float64
	DFBetween int
	PBetween  float64
	Note      string
}

// FunnelData carries the per-study points behind a funnel plot.
type FunnelData struct {
	Effect    []float64
	SE        []float64
	Precision []float64
}

// TrimFill is the outcome of the simplified trim-and-fill heuristic. When
// Performed is false (k below threshold) the numeric fields are zero values
// and Note explains why.
type TrimFill struct {
	Performed      bool
	KOriginal      int
	KTrimmed       int
	OriginalEffect float64
	AdjustedEffect float64
	Note           string
}

// BiasResult is the outcome of Egger's regression asymmetry test plus the
// simplified trim-and-fill correction.
type BiasResult struct {
	Metric         study.Metric
	K              int
	EggerIntercept float64
	EggerSE        float64
	EggerT         float64
	EggerP         float64
	Funnel         FunnelData
	TrimFill       TrimFill
	Note           string
}

// Insufficient reports whether the analysis was skipped for lack of studies.
func (r BiasResult) Insufficient() bool {
	return r.K < minStudies
}
