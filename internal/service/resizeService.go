package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/image-resizer/internal/database"
	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/ds124wfegd/image-resizer/internal/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// WithRequestID attaches the request id that ends up in published events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *imageService) Resize(ctx context.Context, req entity.ResizeRequest) (*entity.ResizeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	var key string
	if s.cache != nil {
		key = database.CacheKey(req)
		if cached, ok := s.cache.Get(key); ok {
			metrics.ResizeTotal.WithLabelValues("cached").Inc()
			s.publish(ctx, req, cached, time.Since(start))
			return cached, nil
		}
	}

	out, err := s.processor.Resize(ctx, req.Image.Data, req.Width, req.Height)
	if err != nil {
		metrics.ResizeTotal.WithLabelValues("error").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"filename": req.Image.Filename,
			"mimetype": req.Image.MimeType,
			"width":    req.Width,
			"height":   req.Height,
		}).Error("Image resize failed")

		if errors.Is(err, entity.ErrResizeTimeout) || errors.Is(err, entity.ErrDecodeImage) || errors.Is(err, entity.ErrResizeFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrResizeFailed, err)
	}
	metrics.ResizeDuration.Observe(time.Since(start).Seconds())
	metrics.ResizeTotal.WithLabelValues("ok").Inc()

	result := &entity.ResizeResult{
		Data:        out.Data,
		ContentType: req.Image.ContentType(),
		Format:      out.Format,
	}

	if s.cache != nil {
		s.cache.Add(key, result)
	}

	s.publish(ctx, req, result, time.Since(start))
	return result, nil
}

// publish never fails the request, the event is informational.
func (s *imageService) publish(ctx context.Context, req entity.ResizeRequest, result *entity.ResizeResult, took time.Duration) {
	event := entity.ResizeEvent{
		RequestID:   requestID(ctx),
		Filename:    req.Image.Filename,
		ContentType: result.ContentType,
		Width:       req.Width,
		Height:      req.Height,
		SourceBytes: len(req.Image.Data),
		ResultBytes: len(result.Data),
		Cached:      result.Cached,
		DurationMs:  took.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.producer.SendMessage(ctx, s.topic, event); err != nil {
		logrus.WithError(err).WithField("topic", s.topic).Warn("Failed to publish resize event")
	}
}
