package service

import (
	"context"
	"errors"
	"testing"

	"github.com/securedtampa/intake-backend/internal/model"
)

func seedSession(t *testing.T, repo *fakeSessionRepo, items ...model.ScannedItem) {
	t.Helper()
	svc := NewSessionService(repo, nilEnricher{})
	for _, it := range items {
		if _, err := svc.Append(context.Background(), testRegister, it); err != nil {
			t.Fatalf("seed append: %v", err)
		}
	}
}

func TestSubmitAllPartialFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	item := newItem("111111111111", "Dunk Low")
	item.SalePrice = 140
	seedSession(t, repo, item)

	// Bump quantity to 3 through the dedupe path.
	seedSession(t, repo, newItem("111111111111", "Dunk Low"))
	seedSession(t, repo, newItem("111111111111", "Dunk Low"))

	history := &fakeHistoryRepo{}
	committer := &fakeCommitter{failOn: map[int]bool{2: true}}
	svc := NewCommitService(repo, history, committer)

	summary, err := svc.SubmitAll(context.Background(), testRegister, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.SuccessCount != 2 || summary.FailureCount != 1 {
		t.Fatalf("summary=%+v want 2/1", summary)
	}
	if committer.calls != 3 {
		t.Fatalf("commit calls=%d want 3 (one per unit)", committer.calls)
	}

	// Failure keeps the session so the operator can retry.
	sess, err := repo.Load(context.Background(), testRegister)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess == nil || len(sess.Items) != 1 {
		t.Fatalf("session cleared after partial failure")
	}

	failed := 0
	for _, e := range history.entries {
		if e.Status == model.HistoryStatusFailed {
			failed++
		}
	}
	if len(history.entries) != 3 || failed != 1 {
		t.Fatalf("history entries=%d failed=%d", len(history.entries), failed)
	}
}

func TestSubmitAllInvalidPriceAborts(t *testing.T) {
	repo := newFakeSessionRepo()
	item := newItem("111111111111", "Dunk Low")
	item.SalePrice = 0
	seedSession(t, repo, item)

	committer := &fakeCommitter{}
	svc := NewCommitService(repo, &fakeHistoryRepo{}, committer)

	_, err := svc.SubmitAll(context.Background(), testRegister, nil)
	var priceErr *InvalidPriceError
	if !errors.As(err, &priceErr) {
		t.Fatalf("err=%v want InvalidPriceError", err)
	}
	if committer.calls != 0 {
		t.Fatalf("commit calls=%d want 0", committer.calls)
	}

	sess, err := repo.Load(context.Background(), testRegister)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sess.Items[0].Expanded {
		t.Fatalf("offending item not expanded")
	}
}

func TestSubmitAllFullSuccessClearsSession(t *testing.T) {
	repo := newFakeSessionRepo()
	a := newItem("111111111111", "Dunk Low")
	a.SalePrice = 140
	b := newItem("222222222222", "Air Force 1")
	b.SalePrice = 95
	seedSession(t, repo, a, b)

	var progress []Progress
	svc := NewCommitService(repo, &fakeHistoryRepo{}, &fakeCommitter{})
	summary, err := svc.SubmitAll(context.Background(), testRegister, func(p Progress) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.SuccessCount != 2 || summary.FailureCount != 0 {
		t.Fatalf("summary=%+v", summary)
	}

	sess, err := repo.Load(context.Background(), testRegister)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess != nil {
		t.Fatalf("session not cleared after full success")
	}

	// One progress tick per item, monotonically increasing.
	if len(progress) != 2 {
		t.Fatalf("progress ticks=%d want 2", len(progress))
	}
	for i, p := range progress {
		if p.ItemsProcessed != i+1 || p.TotalItems != 2 {
			t.Fatalf("tick %d = %+v", i, p)
		}
	}
}

func TestSubmitAllEmptySession(t *testing.T) {
	svc := NewCommitService(newFakeSessionRepo(), &fakeHistoryRepo{}, &fakeCommitter{})
	if _, err := svc.SubmitAll(context.Background(), testRegister, nil); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("err=%v want ErrEmptySession", err)
	}
}
