package repository

import (
	"context"
	"errors"

	"github.com/securedtampa/intake-backend/internal/model"
	"gorm.io/gorm"
)

// SessionRepository persists at most one ScanSession per register key. The
// whole session is rewritten on every save so a crash can only lose the
// in-flight mutation.
type SessionRepository interface {
	Load(ctx context.Context, registerKey string) (*model.ScanSession, error)
	Save(ctx context.Context, session *model.ScanSession) error
	Delete(ctx context.Context, registerKey string) error
	SetDB(db *gorm.DB)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Load(ctx context.Context, registerKey string) (*model.ScanSession, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var session model.ScanSession
	if err := r.db.WithContext(ctx).
		Where("register_key = ?", registerKey).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := session.DecodeItems(); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *model.ScanSession) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if err := session.EncodeItems(); err != nil {
		return err
	}
	if session.ID == 0 {
		var existing model.ScanSession
		err := r.db.WithContext(ctx).
			Where("register_key = ?", session.RegisterKey).
			First(&existing).Error
		if err == nil {
			session.ID = existing.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if session.ID == 0 {
		return r.db.WithContext(ctx).Create(session).Error
	}
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, registerKey string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Where("register_key = ?", registerKey).
		Delete(&model.ScanSession{}).Error
}

func (r *sessionRepository) SetDB(db *gorm.DB) {
	r.db = db
}
