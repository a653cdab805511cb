package service

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/repository"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrItemNotFound = errors.New("item not found")
	ErrEmptySession = errors.New("session has no items")
	ErrInvalidPhase = errors.New("invalid phase")
)

// ItemPatch is a partial update to one scanned item. Nil fields are left
// untouched.
type ItemPatch struct {
	Quantity  *int
	Condition *model.Condition
	Complete  *bool
	UnitCost  *int64
	SalePrice *int64
	Images    *[]string
	VariantID *string
	Expanded  *bool
}

// SessionService owns the single mutable ScanSession per register key. Every
// mutation is written through to the repository before returning.
type SessionService interface {
	Current(ctx context.Context, registerKey string) (*model.ScanSession, error)
	Append(ctx context.Context, registerKey string, item model.ScannedItem) (*model.ScanSession, error)
	Mutate(ctx context.Context, registerKey, localID string, patch ItemPatch) (*model.ScanSession, error)
	Remove(ctx context.Context, registerKey, localID string) (*model.ScanSession, error)
	SetPhase(ctx context.Context, registerKey string, phase model.Phase) (*model.ScanSession, error)
	SetBuyer(ctx context.Context, registerKey, buyerName, paymentMethod string) (*model.ScanSession, error)
	Discard(ctx context.Context, registerKey string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	enricher Enricher
}

func NewSessionService(sessions repository.SessionRepository, enricher Enricher) SessionService {
	return &sessionService{sessions: sessions, enricher: enricher}
}

func (s *sessionService) Current(ctx context.Context, registerKey string) (*model.ScanSession, error) {
	return s.sessions.Load(ctx, registerKey)
}

func (s *sessionService) Append(ctx context.Context, registerKey string, item model.ScannedItem) (*model.ScanSession, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = &model.ScanSession{RegisterKey: registerKey, Phase: model.PhaseScanning}
	}

	// Items without a scan code (manual entries) never merge; each one is
	// its own row.
	var existing *model.ScannedItem
	if item.ScanCode != "" {
		existing = sess.FindByCode(item.ScanCode)
	}
	if existing != nil {
		existing.Quantity++
	} else {
		item.LocalID = ulid.Make().String()
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.Condition == "" {
			item.Condition = model.ConditionNew
		}
		if item.Images == nil {
			item.Images = append([]string(nil), item.StockImages...)
		}
		sess.Items = append(sess.Items, item)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Mutate(ctx context.Context, registerKey, localID string, patch ItemPatch) (*model.ScanSession, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	item := sess.FindItem(localID)
	if item == nil {
		return nil, ErrItemNotFound
	}

	if patch.Quantity != nil && *patch.Quantity >= 1 {
		item.Quantity = *patch.Quantity
	}
	if patch.Condition != nil {
		*item = model.ApplyCondition(*item, *patch.Condition)
	}
	if patch.Complete != nil {
		item.Complete = *patch.Complete
	}
	if patch.UnitCost != nil {
		item.UnitCost = *patch.UnitCost
	}
	if patch.SalePrice != nil {
		item.SalePrice = *patch.SalePrice
	}
	if patch.Images != nil {
		item.Images = *patch.Images
	}
	if patch.Expanded != nil {
		item.Expanded = *patch.Expanded
	}
	if patch.VariantID != nil && *patch.VariantID != item.VariantID {
		item.VariantID = *patch.VariantID
		for _, opt := range item.Variants {
			if opt.VariantID == item.VariantID {
				item.Size = opt.Size
				break
			}
		}
		// The stale snapshot is replaced even when the fetch comes back nil.
		item.Market = s.enricher.Snapshot(ctx, item.ProductID, item.VariantID)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Remove(ctx context.Context, registerKey, localID string) (*model.ScanSession, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	kept := sess.Items[:0]
	found := false
	for _, it := range sess.Items {
		if it.LocalID == localID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	sess.Items = kept

	// A session with zero items is treated as nonexistent.
	if len(sess.Items) == 0 {
		if err := s.sessions.Delete(ctx, registerKey); err != nil {
			return nil, err
		}
		sess.Phase = model.PhaseScanning
		return sess, nil
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) SetPhase(ctx context.Context, registerKey string, phase model.Phase) (*model.ScanSession, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	switch phase {
	case model.PhasePricing:
		if len(sess.Items) == 0 {
			return nil, ErrEmptySession
		}
		// Items render collapsed when pricing opens.
		for i := range sess.Items {
			sess.Items[i].Expanded = false
		}
	case model.PhaseScanning:
		// "Back" is always allowed and keeps pricing edits.
	default:
		return nil, ErrInvalidPhase
	}
	sess.Phase = phase

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) SetBuyer(ctx context.Context, registerKey, buyerName, paymentMethod string) (*model.ScanSession, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	sess.BuyerName = buyerName
	sess.PaymentMethod = paymentMethod
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Discard(ctx context.Context, registerKey string) error {
	return s.sessions.Delete(ctx, registerKey)
}
