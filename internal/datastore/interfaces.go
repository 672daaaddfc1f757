// Package datastore persists pipeline runs: the extracted study table and
// the pooled outcomes of every analysis, keyed by a run ID so repeated
// executions over a growing literature base stay comparable.
package datastore

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
)

// Interface abstracts the underlying database implementation.
type Interface interface {
	Open() error
	Close() error
	SaveRun(run *AnalysisRun, studies []StudyRow, outcomes []PooledOutcome) error
	GetRun(id string) (AnalysisRun, error)
	GetRuns(limit int) ([]AnalysisRun, error)
	GetStudies(runID string) ([]StudyRow, error)
	GetOutcomes(runID string) ([]PooledOutcome, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New returns the store matching the enabled output, or nil when no database
// output is configured.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		return nil
	}
}

// SaveRun stores a run with its study table and pooled outcomes as a single
// transaction.
func (ds *DataStore) SaveRun(run *AnalysisRun, studies []StudyRow, outcomes []PooledOutcome) error {
	if ds.DB == nil {
		return errors.New("database connection is not initialized")
	}

	tx := ds.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("starting transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(run).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("saving run: %w", err)
	}
	for i := range studies {
		studies[i].RunID = run.ID
		if err := tx.Create(&studies[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("saving study row: %w", err)
		}
	}
	for i := range outcomes {
		outcomes[i].RunID = run.ID
		if err := tx.Create(&outcomes[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("saving outcome: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRun fetches one run by ID.
func (ds *DataStore) GetRun(id string) (AnalysisRun, error) {
	var run AnalysisRun
	err := ds.DB.Where("id = ?", id).First(&run).Error
	return run, err
}

// GetRuns fetches the most recent runs, newest first.
func (ds *DataStore) GetRuns(limit int) ([]AnalysisRun, error) {
	var runs []AnalysisRun
	err := ds.DB.Order("created_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetStudies fetches the study table of a run.
func (ds *DataStore) GetStudies(runID string) ([]StudyRow, error) {
	var rows []StudyRow
	err := ds.DB.Where("run_id = ?", runID).Find(&rows).Error
	return rows, err
}

// GetOutcomes fetches the pooled outcomes of a run.
func (ds *DataStore) GetOutcomes(runID string) ([]PooledOutcome, error) {
	var outcomes []PooledOutcome
	err := ds.DB.Where("run_id = ?", runID).Find(&outcomes).Error
	return outcomes, err
}

func createGormLogger(debug bool) logger.Interface {
	level := logger.Error
	if debug {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&AnalysisRun{}, &StudyRow{}, &PooledOutcome{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}
	if debug {
		log.Printf("%s database initialized: %s", dbType, connectionInfo)
	}
	return nil
}
