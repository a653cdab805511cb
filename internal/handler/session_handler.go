package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/service"
)

type SessionHandler struct {
	sessions service.SessionService
}

func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type SessionStateResponse struct {
	Session   SessionResponse `json:"session"`
	Resumable bool            `json:"resumable"`
}

// Get loads the persisted session at workflow start. A non-empty session is
// flagged resumable; the client must resume or discard before scanning.
func (h *SessionHandler) Get(c echo.Context) error {
	sess, err := h.sessions.Current(c.Request().Context(), registerKey(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load session"))
	}
	return c.JSON(http.StatusOK, SessionStateResponse{
		Session:   toSessionResponse(sess),
		Resumable: sess != nil && len(sess.Items) > 0,
	})
}

func (h *SessionHandler) Resume(c echo.Context) error {
	sess, err := h.sessions.Current(c.Request().Context(), registerKey(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load session"))
	}
	if sess == nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no session to resume"))
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

func (h *SessionHandler) Discard(c echo.Context) error {
	if err := h.sessions.Discard(c.Request().Context(), registerKey(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to discard session"))
	}
	return c.JSON(http.StatusOK, toSessionResponse(nil))
}

type PhaseRequest struct {
	Phase string `json:"phase"`
}

func (h *SessionHandler) SetPhase(c echo.Context) error {
	var req PhaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	sess, err := h.sessions.SetPhase(c.Request().Context(), registerKey(c), model.Phase(req.Phase))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no active session"))
		case errors.Is(err, service.ErrEmptySession):
			return c.JSON(http.StatusConflict, NewErrorResponse("empty_session", "scan at least one item first"))
		case errors.Is(err, service.ErrInvalidPhase):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid phase"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to change phase"))
		}
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

type BuyerRequest struct {
	BuyerName     string `json:"buyerName"`
	PaymentMethod string `json:"paymentMethod"`
}

func (h *SessionHandler) SetBuyer(c echo.Context) error {
	var req BuyerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	sess, err := h.sessions.SetBuyer(c.Request().Context(), registerKey(c), req.BuyerName, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no active session"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update session"))
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}
