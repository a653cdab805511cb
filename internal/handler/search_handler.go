package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/securedtampa/intake-backend/internal/marketplace"
)

// SearchHandler exposes the marketplace free-text search used as the manual
// fallback when a barcode resolves nowhere.
type SearchHandler struct {
	market marketplace.Client
}

func NewSearchHandler(market marketplace.Client) *SearchHandler {
	return &SearchHandler{market: market}
}

func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "q is required"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	products, err := h.market.Search(c.Request().Context(), query, limit)
	if err != nil {
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "marketplace search failed"))
	}
	return c.JSON(http.StatusOK, products)
}

type ProductDetailResponse struct {
	Product  *marketplace.ProductDetail `json:"product"`
	Variants []VariantResponse          `json:"variants"`
}

type VariantResponse struct {
	VariantID string `json:"variantId"`
	Size      string `json:"size"`
}

func (h *SearchHandler) Detail(c echo.Context) error {
	productID := c.Param("productId")
	detail, err := h.market.Detail(c.Request().Context(), productID)
	if err != nil {
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "marketplace detail failed"))
	}
	variants, err := h.market.Variants(c.Request().Context(), productID)
	if err != nil {
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "marketplace variants failed"))
	}
	resp := ProductDetailResponse{Product: detail, Variants: make([]VariantResponse, 0, len(variants))}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, VariantResponse{VariantID: v.ID, Size: v.DisplaySize()})
	}
	return c.JSON(http.StatusOK, resp)
}
