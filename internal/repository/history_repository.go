package repository

import (
	"context"

	"github.com/securedtampa/intake-backend/internal/model"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *model.HistoryEntry) error
	ListByRegister(ctx context.Context, registerKey string, limit int) ([]model.HistoryEntry, error)
	SetDB(db *gorm.DB)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *model.HistoryEntry) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) ListByRegister(ctx context.Context, registerKey string, limit int) ([]model.HistoryEntry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []model.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("register_key = ?", registerKey).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) SetDB(db *gorm.DB) {
	r.db = db
}
