package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/securedtampa/intake-backend/internal/model"
	"github.com/securedtampa/intake-backend/internal/service"
)

// registerKeyHeader identifies which register/device a session belongs to.
const registerKeyHeader = "X-Register-Key"

func registerKey(c echo.Context) string {
	if key := c.Request().Header.Get(registerKeyHeader); key != "" {
		return key
	}
	return "default"
}

type ScanHandler struct {
	intake   service.IntakeService
	sessions service.SessionService
}

func NewScanHandler(intake service.IntakeService, sessions service.SessionService) *ScanHandler {
	return &ScanHandler{intake: intake, sessions: sessions}
}

type SessionResponse struct {
	Phase         string              `json:"phase"`
	BuyerName     string              `json:"buyerName,omitempty"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	Items         []model.ScannedItem `json:"items"`
	TotalUnits    int                 `json:"totalUnits"`
	UpdatedAt     string              `json:"updatedAt,omitempty"`
}

func toSessionResponse(s *model.ScanSession) SessionResponse {
	resp := SessionResponse{
		Phase: string(model.PhaseScanning),
		Items: []model.ScannedItem{},
	}
	if s == nil {
		return resp
	}
	resp.Phase = string(s.Phase)
	resp.BuyerName = s.BuyerName
	resp.PaymentMethod = s.PaymentMethod
	resp.TotalUnits = s.TotalUnits()
	if len(s.Items) > 0 {
		resp.Items = s.Items
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

type ScanRequest struct {
	Code string `json:"code"`
}

func (h *ScanHandler) Scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	sess, err := h.intake.Scan(c.Request().Context(), registerKey(c), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrCodeNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "barcode not recognized"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

type ManualAddRequest struct {
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	Brand       string                `json:"brand"`
	Colorway    string                `json:"colorway"`
	StyleID     string                `json:"styleId"`
	Size        string                `json:"size"`
	RetailPrice int64                 `json:"retailPrice"`
	Images      []string              `json:"images"`
	ProductID   string                `json:"productId"`
	VariantID   string                `json:"variantId"`
	Variants    []model.VariantOption `json:"variants"`
}

func (h *ScanHandler) ManualAdd(c echo.Context) error {
	var req ManualAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}
	product := service.ResolvedProduct{
		Name:        req.Name,
		Brand:       req.Brand,
		Colorway:    req.Colorway,
		StyleID:     req.StyleID,
		Size:        req.Size,
		RetailPrice: req.RetailPrice,
		Images:      req.Images,
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		Variants:    req.Variants,
		Provenance:  model.ProvenanceManual,
	}
	sess, err := h.intake.ManualAdd(c.Request().Context(), registerKey(c), product, req.Code)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

type ItemPatchRequest struct {
	Quantity  *int      `json:"quantity"`
	Condition *string   `json:"condition"`
	Complete  *bool     `json:"complete"`
	UnitCost  *int64    `json:"unitCost"`
	SalePrice *int64    `json:"salePrice"`
	Images    *[]string `json:"images"`
	VariantID *string   `json:"variantId"`
	Expanded  *bool     `json:"expanded"`
}

func (h *ScanHandler) UpdateItem(c echo.Context) error {
	var req ItemPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	patch := service.ItemPatch{
		Quantity:  req.Quantity,
		Complete:  req.Complete,
		UnitCost:  req.UnitCost,
		SalePrice: req.SalePrice,
		Images:    req.Images,
		VariantID: req.VariantID,
		Expanded:  req.Expanded,
	}
	if req.Condition != nil {
		cond := model.Condition(*req.Condition)
		patch.Condition = &cond
	}
	sess, err := h.sessions.Mutate(c.Request().Context(), registerKey(c), c.Param("localId"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrItemNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update item"))
		}
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

func (h *ScanHandler) RemoveItem(c echo.Context) error {
	sess, err := h.sessions.Remove(c.Request().Context(), registerKey(c), c.Param("localId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrItemNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to remove item"))
		}
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}
