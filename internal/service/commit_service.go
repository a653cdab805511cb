package service

import (
	"context"
	"fmt"
	"log"

	"github.com/securedtampa/intake-backend/internal/inventory"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/repository"
)

// InvalidPriceError aborts a submission before any commit call is made. The
// offending item is force-expanded so the operator can fix it.
type InvalidPriceError struct {
	LocalID string
	Name    string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("item %q has no valid sale price", e.Name)
}

type CommitSummary struct {
	SuccessCount int
	FailureCount int
}

type Progress struct {
	ItemsProcessed int
	TotalItems     int
}

type ProgressFunc func(Progress)

// CommitService drains a session into the inventory service, one unit per
// call. Best effort: a failed unit is recorded and skipped, never retried or
// rolled back.
type CommitService interface {
	SubmitAll(ctx context.Context, registerKey string, onProgress ProgressFunc) (*CommitSummary, error)
}

type commitService struct {
	sessions  repository.SessionRepository
	history   repository.HistoryRepository
	committer inventory.Committer
}

func NewCommitService(sessions repository.SessionRepository, history repository.HistoryRepository, committer inventory.Committer) CommitService {
	return &commitService{sessions: sessions, history: history, committer: committer}
}

func (s *commitService) SubmitAll(ctx context.Context, registerKey string, onProgress ProgressFunc) (*CommitSummary, error) {
	sess, err := s.sessions.Load(ctx, registerKey)
	if err != nil {
		return nil, err
	}
	if sess == nil || len(sess.Items) == 0 {
		return nil, ErrEmptySession
	}

	// All-or-nothing validation before the first commit call.
	for i := range sess.Items {
		if sess.Items[i].SalePrice > 0 {
			continue
		}
		sess.Items[i].Expanded = true
		if err := s.sessions.Save(ctx, sess); err != nil {
			log.Printf("commit: save expanded item: %v", err)
		}
		return nil, &InvalidPriceError{LocalID: sess.Items[i].LocalID, Name: sess.Items[i].Name}
	}

	summary := &CommitSummary{}
	total := len(sess.Items)
	for i := range sess.Items {
		item := &sess.Items[i]
		for n := 0; n < item.Quantity; n++ {
			unit := buildUnit(item)
			id, err := s.committer.Commit(ctx, unit)
			entry := &model.HistoryEntry{
				RegisterKey: registerKey,
				ScanCode:    item.ScanCode,
				Name:        item.Name,
				Size:        item.Size,
				SalePrice:   item.SalePrice,
			}
			if err != nil {
				log.Printf("commit: unit %d/%d of %q: %v", n+1, item.Quantity, item.Name, err)
				summary.FailureCount++
				entry.Status = model.HistoryStatusFailed
				entry.Detail = err.Error()
			} else {
				summary.SuccessCount++
				entry.Status = model.HistoryStatusSuccess
				entry.InventoryID = id
			}
			if err := s.history.Create(ctx, entry); err != nil {
				log.Printf("commit: history write: %v", err)
			}
		}
		if onProgress != nil {
			onProgress(Progress{ItemsProcessed: i + 1, TotalItems: total})
		}
	}

	// Full success clears the session; any failure keeps it so the operator
	// can retry the remainder.
	if summary.FailureCount == 0 {
		if err := s.sessions.Delete(ctx, registerKey); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func buildUnit(item *model.ScannedItem) inventory.Unit {
	return inventory.Unit{
		ScanCode:  item.ScanCode,
		Name:      item.Name,
		Brand:     item.Brand,
		Colorway:  item.Colorway,
		StyleID:   item.StyleID,
		Size:      item.Size,
		Condition: string(item.Condition),
		Complete:  item.Complete,
		Cost:      item.UnitCost,
		Price:     item.SalePrice,
		Images:    item.Images,
	}
}
