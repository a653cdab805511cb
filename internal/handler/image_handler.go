package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/securedtampa/intake-backend/internal/imagestore"
	"github.com/securedtampa/intake-backend/internal/service"
)

const maxUploadBytes = 10 << 20

// ImageHandler accepts an original photo for a priced item, stores it, and
// appends the resulting URL to the item's chosen image set.
type ImageHandler struct {
	uploader imagestore.Uploader
	sessions service.SessionService
}

func NewImageHandler(uploader imagestore.Uploader, sessions service.SessionService) *ImageHandler {
	return &ImageHandler{uploader: uploader, sessions: sessions}
}

func (h *ImageHandler) Upload(c echo.Context) error {
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "image storage not configured"))
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("too_large", "image exceeds 10MB"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	localID := c.Param("localId")
	objectPath := fmt.Sprintf("intake/%s/%d.jpg", localID, time.Now().UnixNano())
	url, err := h.uploader.Upload(c.Request().Context(), objectPath, contentType, data)
	if err != nil {
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "image upload failed"))
	}

	// Append to the item's chosen set via the normal mutation path so the
	// session write-through applies.
	sess, err := h.sessions.Current(c.Request().Context(), registerKey(c))
	if err != nil || sess == nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no active session"))
	}
	item := sess.FindItem(localID)
	if item == nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
	}
	images := append(append([]string(nil), item.Images...), url)
	if _, err := h.sessions.Mutate(c.Request().Context(), registerKey(c), localID, service.ItemPatch{Images: &images}); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to attach image"))
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
