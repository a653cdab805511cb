package repository

import (
	"context"
	"errors"

	"github.com/securedtampa/intake-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type CatalogRepository interface {
	FindByCode(ctx context.Context, code string) (*model.CatalogEntry, error)
	IncrementUsage(ctx context.Context, code string) error
	Upsert(ctx context.Context, entry *model.CatalogEntry) error
	SetDB(db *gorm.DB)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindByCode(ctx context.Context, code string) (*model.CatalogEntry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var entry model.CatalogEntry
	if err := r.db.WithContext(ctx).
		Where("scan_code = ?", code).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) IncrementUsage(ctx context.Context, code string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.CatalogEntry{}).
		Where("scan_code = ?", code).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func (r *catalogRepository) Upsert(ctx context.Context, entry *model.CatalogEntry) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	var existing model.CatalogEntry
	err := r.db.WithContext(ctx).
		Where("scan_code = ?", entry.ScanCode).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(entry).Error
		}
		return err
	}
	entry.ID = existing.ID
	entry.UsageCount = existing.UsageCount
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *catalogRepository) SetDB(db *gorm.DB) {
	r.db = db
}
