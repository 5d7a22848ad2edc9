package transport

import (
	"github.com/ds124wfegd/image-resizer/internal/service"
)

type ImageHandler struct {
	service       service.ImageService
	maxUploadSize int64
	maxDimension  int
}

func NewImageHandler(service service.ImageService, maxUploadSize int64, maxDimension int) *ImageHandler {
	return &ImageHandler{service: service, maxUploadSize: maxUploadSize, maxDimension: maxDimension}
}
