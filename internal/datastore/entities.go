package datastore

import "time"

// AnalysisRun is one execution of the pipeline over an input set.
type AnalysisRun struct {
	ID           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	InputPath    string
	Imported     int
	Deduplicated int
	Screened     int
	Included     int
}

// StudyRow is a persisted metrics-table row. Missing measurements are NULL.
type StudyRow struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    string `gorm:"index"`
	StudyID  string `gorm:"index"`
	Title    string
	Year     *float64
	R2       *float64
	RMSE     *float64
	MAE      *float64
	Acc      *float64
	Sens     *float64
	Spec     *float64
	N        *float64
	AIMethod string
	Domain   string
	Scale    string
	Included bool
}

// PooledOutcome is one flattened analysis result. Kind distinguishes the
// analysis family; fields not used by a kind are NULL. Undefined statistics
// are stored as NULL rather than NaN so both SQL backends accept them.
type PooledOutcome struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RunID     string `gorm:"index"`
	Kind      string `gorm:"index"`
	Metric    string
	Moderator string
	Group     string `gorm:"column:group_label"`
	K         int
	Effect    *float64
	SE        *float64
	CILow     *float64
	CIHigh    *float64
	PILow     *float64
	PIHigh    *float64
	Tau2      *float64
	I2        *float64
	Q         *float64
	PHet      *float64
	P         *float64
	Note      string
}

// Outcome kinds.
const (
	KindContinuous = "continuous"
	KindDiagnostic = "diagnostic"
	KindSubgroup   = "subgroup"
	KindBias       = "bias"
)
