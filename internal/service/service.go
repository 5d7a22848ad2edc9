package service

import (
	"context"

	"github.com/ds124wfegd/image-resizer/internal/database"
	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/ds124wfegd/image-resizer/internal/pkg/kafka"
	"github.com/ds124wfegd/image-resizer/internal/pkg/processor"
)

type ImageService interface {
	Resize(ctx context.Context, req entity.ResizeRequest) (*entity.ResizeResult, error)
}

type imageService struct {
	cache     database.ResizeCache
	producer  kafka.Producer
	processor processor.ImageProcessor
	topic     string
}

// NewImageService accepts a nil cache when caching is disabled.
func NewImageService(cache database.ResizeCache, producer kafka.Producer, processor processor.ImageProcessor, topic string) ImageService {
	if producer == nil {
		producer = kafka.NewNoopProducer()
	}
	return &imageService{
		cache:     cache,
		producer:  producer,
		processor: processor,
		topic:     topic,
	}
}
