package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shekokarmahesh/contract-intel/model"
)

// contractRow is the database shape of a contract. Extraction results live in
// jsonb columns so the document store stays schema-stable as patterns evolve.
type contractRow struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	Filename         string `gorm:"type:varchar(512)"`
	Tenant           string `gorm:"type:varchar(128);index"`
	FileSize         int64
	ObjectKey        string `gorm:"type:varchar(512)"`
	Status           string `gorm:"type:varchar(16);index"`
	Progress         int
	Score            int
	ExtractedData    *string `gorm:"type:jsonb"`
	Gaps             *string `gorm:"type:jsonb"`
	ConfidenceScores *string `gorm:"type:jsonb"`
	ErrorMsg         string  `gorm:"type:text"`
	UploadedAt       time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

func (contractRow) TableName() string { return "contracts" }

// DBStore is a ContractStore backed by a relational database through gorm.
type DBStore struct {
	db *gorm.DB
}

// OpenPostgres connects to Postgres with the given DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// NewDBStore wraps an open gorm connection and migrates the contracts table.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&contractRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate contracts table: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) Save(ctx context.Context, c *model.Contract) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *DBStore) Get(ctx context.Context, id string) (*model.Contract, error) {
	var row contractRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromRow(&row)
}

func (s *DBStore) List(ctx context.Context, tenant string, opts ListOptions) ([]*model.Contract, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&contractRow{}).Where("tenant = ?", tenant)
		if opts.Status != "" {
			q = q.Where("status = ?", opts.Status)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(opts)
	var rows []contractRow
	err := query().
		Order("uploaded_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	contracts := make([]*model.Contract, 0, len(rows))
	for i := range rows {
		c, err := fromRow(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, total, nil
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&contractRow{}).Error
}

func (s *DBStore) MarkProcessing(ctx context.Context, id string, progress int) error {
	return s.update(ctx, id, map[string]any{
		"status":    model.StatusProcessing,
		"progress":  progress,
		"error_msg": "",
	})
}

func (s *DBStore) SetProgress(ctx context.Context, id string, progress int) error {
	return s.update(ctx, id, map[string]any{"progress": progress})
}

func (s *DBStore) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return s.update(ctx, id, map[string]any{
		"status":    model.StatusFailed,
		"progress":  0,
		"error_msg": errMsg,
	})
}

func (s *DBStore) MarkCompleted(ctx context.Context, id string, data *model.ExtractedData, score int, gaps []model.Gap, confidence map[string]float64) error {
	dataJSON, err := marshalColumn(data)
	if err != nil {
		return err
	}
	gapsJSON, err := marshalColumn(gaps)
	if err != nil {
		return err
	}
	confJSON, err := marshalColumn(confidence)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.update(ctx, id, map[string]any{
		"status":            model.StatusCompleted,
		"progress":          100,
		"score":             score,
		"extracted_data":    dataJSON,
		"gaps":              gapsJSON,
		"confidence_scores": confJSON,
		"error_msg":         "",
		"completed_at":      &now,
	})
}

func (s *DBStore) DeleteFailedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("status = ? AND uploaded_at < ?", model.StatusFailed, cutoff).
		Delete(&contractRow{})
	return result.RowsAffected, result.Error
}

// update applies a partial field update to one contract and bumps updated_at.
func (s *DBStore) update(ctx context.Context, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	return s.db.WithContext(ctx).
		Model(&contractRow{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func toRow(c *model.Contract) (*contractRow, error) {
	row := &contractRow{
		ID:          c.ID,
		Filename:    c.Filename,
		Tenant:      c.Tenant,
		FileSize:    c.FileSize,
		ObjectKey:   c.ObjectKey,
		Status:      c.Status,
		Progress:    c.Progress,
		Score:       c.Score,
		ErrorMsg:    c.ErrorMsg,
		UploadedAt:  c.UploadedAt,
		UpdatedAt:   c.UpdatedAt,
		CompletedAt: c.CompletedAt,
	}

	var err error
	if c.ExtractedData != nil {
		if row.ExtractedData, err = marshalColumn(c.ExtractedData); err != nil {
			return nil, err
		}
	}
	if c.Gaps != nil {
		if row.Gaps, err = marshalColumn(c.Gaps); err != nil {
			return nil, err
		}
	}
	if c.ConfidenceScores != nil {
		if row.ConfidenceScores, err = marshalColumn(c.ConfidenceScores); err != nil {
			return nil, err
		}
	}
	return row, nil
}

func fromRow(row *contractRow) (*model.Contract, error) {
	c := &model.Contract{
		ID:          row.ID,
		Filename:    row.Filename,
		Tenant:      row.Tenant,
		FileSize:    row.FileSize,
		ObjectKey:   row.ObjectKey,
		Status:      row.Status,
		Progress:    row.Progress,
		Score:       row.Score,
		ErrorMsg:    row.ErrorMsg,
		UploadedAt:  row.UploadedAt,
		UpdatedAt:   row.UpdatedAt,
		CompletedAt: row.CompletedAt,
	}

	if row.ExtractedData != nil {
		c.ExtractedData = &model.ExtractedData{}
		if err := json.Unmarshal([]byte(*row.ExtractedData), c.ExtractedData); err != nil {
			return nil, fmt.Errorf("failed to decode extracted data for %s: %w", row.ID, err)
		}
	}
	if row.Gaps != nil {
		if err := json.Unmarshal([]byte(*row.Gaps), &c.Gaps); err != nil {
			return nil, fmt.Errorf("failed to decode gaps for %s: %w", row.ID, err)
		}
	}
	if row.ConfidenceScores != nil {
		if err := json.Unmarshal([]byte(*row.ConfidenceScores), &c.ConfidenceScores); err != nil {
			return nil, fmt.Errorf("failed to decode confidence scores for %s: %w", row.ID, err)
		}
	}
	return c, nil
}

func marshalColumn(v any) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	s := string(b)
	return &s, nil
}
