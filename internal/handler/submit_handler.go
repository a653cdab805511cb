package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/repository"
	"github.com/securedtampa/intake-backend/internal/service"
)

type SubmitHandler struct {
	commits service.CommitService
	history repository.HistoryRepository
}

func NewSubmitHandler(commits service.CommitService, history repository.HistoryRepository) *SubmitHandler {
	return &SubmitHandler{commits: commits, history: history}
}

type SubmitResponse struct {
	SuccessCount int  `json:"successCount"`
	FailureCount int  `json:"failureCount"`
	Cleared      bool `json:"cleared"`
}

func (h *SubmitHandler) Submit(c echo.Context) error {
	key := registerKey(c)
	summary, err := h.commits.SubmitAll(c.Request().Context(), key, func(p service.Progress) {
		log.Printf("submit %s: %d/%d items", key, p.ItemsProcessed, p.TotalItems)
	})
	if err != nil {
		var priceErr *service.InvalidPriceError
		switch {
		case errors.As(err, &priceErr):
			return c.JSON(http.StatusUnprocessableEntity, NewItemErrorResponse("invalid_price", priceErr.Error(), priceErr.LocalID))
		case errors.Is(err, service.ErrEmptySession):
			return c.JSON(http.StatusConflict, NewErrorResponse("empty_session", "nothing to submit"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "submission failed"))
		}
	}
	return c.JSON(http.StatusOK, SubmitResponse{
		SuccessCount: summary.SuccessCount,
		FailureCount: summary.FailureCount,
		Cleared:      summary.FailureCount == 0,
	})
}

type HistoryEntryResponse struct {
	ID          uint64 `json:"id"`
	ScanCode    string `json:"scanCode"`
	Name        string `json:"name"`
	Size        string `json:"size,omitempty"`
	SalePrice   int64  `json:"salePrice"`
	Status      string `json:"status"`
	InventoryID string `json:"inventoryId,omitempty"`
	Detail      string `json:"detail,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (h *SubmitHandler) History(c echo.Context) error {
	entries, err := h.history.ListByRegister(c.Request().Context(), registerKey(c), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch history"))
	}
	resp := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toHistoryResponse(&entries[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func toHistoryResponse(e *model.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:          e.ID,
		ScanCode:    e.ScanCode,
		Name:        e.Name,
		Size:        e.Size,
		SalePrice:   e.SalePrice,
		Status:      e.Status,
		InventoryID: e.InventoryID,
		Detail:      e.Detail,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
