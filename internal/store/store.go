// Package store persists extraction results between scan runs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Extraction is one analyzed sample and its outcome.
type Extraction struct {
	ID         string `gorm:"primaryKey"`
	SHA256     string `gorm:"index"`
	Filename   string
	Kind       string
	Status     string
	XorKey     string
	KeySource  string
	ConfigJSON string
	CreatedAt  time.Time
}

const (
	StatusExtracted = "extracted"
	StatusNoPayload = "no_payload"
	StatusNoStrings = "no_strings"
	StatusError     = "error"
)

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open result database. %v", err)
	}
	if err := db.AutoMigrate(&Extraction{}); err != nil {
		return nil, fmt.Errorf("unable to migrate result database. %v", err)
	}
	log.WithField("path", path).Debug("Result database ready")
	return db, nil
}

// Repository stores and queries extraction results.
type Repository interface {
	Save(ctx context.Context, extraction *Extraction) error
	FindBySHA256(ctx context.Context, sha256 string) (*Extraction, error)
	List(ctx context.Context) ([]Extraction, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type repository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewRepository(db *gorm.DB, log *logrus.Logger) Repository {
	return &repository{db: db, log: log}
}

// Save upserts by sample hash: re-scanning a file updates its previous row
// and keeps the original ID and first-seen time.
func (r *repository) Save(ctx context.Context, extraction *Extraction) error {
	if extraction.ID == "" {
		extraction.ID = uuid.NewString()
	}
	if extraction.CreatedAt.IsZero() {
		extraction.CreatedAt = time.Now().UTC()
	}

	var existing Extraction
	err := r.db.WithContext(ctx).Where("sha256 = ?", extraction.SHA256).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).Create(extraction).Error; err != nil {
			return fmt.Errorf("unable to store extraction. %v", err)
		}
		r.log.WithFields(logrus.Fields{
			"sha256": extraction.SHA256,
			"status": extraction.Status,
		}).Debug("Stored extraction result")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to query extractions. %v", err)
	}

	extraction.ID = existing.ID
	extraction.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(extraction).Error; err != nil {
		return fmt.Errorf("unable to update extraction. %v", err)
	}
	r.log.WithFields(logrus.Fields{
		"sha256": extraction.SHA256,
		"status": extraction.Status,
	}).Debug("Updated extraction result")
	return nil
}

func (r *repository) FindBySHA256(ctx context.Context, sha256 string) (*Extraction, error) {
	var extraction Extraction
	if err := r.db.WithContext(ctx).Where("sha256 = ?", sha256).First(&extraction).Error; err != nil {
		return nil, err
	}
	return &extraction, nil
}

func (r *repository) List(ctx context.Context) ([]Extraction, error) {
	var extractions []Extraction
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&extractions).Error; err != nil {
		return nil, fmt.Errorf("unable to list extractions. %v", err)
	}
	return extractions, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Extraction{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("unable to count extractions. %v", err)
	}
	return count, nil
}
