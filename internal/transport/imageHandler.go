package transport

import (
	"net/http"

	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/ds124wfegd/image-resizer/internal/service"
	"github.com/ds124wfegd/image-resizer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

// ResizeImage serves both /image and /imageWithKey; the guarded route only
// differs by the middleware in front of it.
func (h *ImageHandler) ResizeImage(c *gin.Context) {
	form, err := h.readUploadForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if form.Image == nil {
		respondError(c, entity.ErrMissingFile)
		return
	}

	req, err := entity.NewResizeRequest(form.Image, form.Width, form.Height, h.maxDimension)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := service.WithRequestID(c.Request.Context(), c.GetString(middleware.RequestIDKey))
	result, err := h.service.Resize(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *ImageHandler) CheckAPIKey(c *gin.Context) {
	c.String(http.StatusOK, ValidAPIKeyMsg)
}

func (h *ImageHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, LivenessMsg)
}

func (h *ImageHandler) NotFound(c *gin.Context) {
	respondError(c, entity.ErrNotFound)
}
