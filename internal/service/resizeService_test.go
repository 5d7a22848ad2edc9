package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ds124wfegd/image-resizer/internal/database"
	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/ds124wfegd/image-resizer/internal/pkg/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Resize(ctx context.Context, data []byte, width, height int) (*processor.Output, error) {
	args := m.Called(ctx, data, width, height)
	out, _ := args.Get(0).(*processor.Output)
	return out, args.Error(1)
}

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) SendMessage(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *mockProducer) Close() error {
	return nil
}

func validRequest() entity.ResizeRequest {
	return entity.ResizeRequest{
		Width:  200,
		Height: 100,
		Image: entity.UploadedImage{
			Data:     []byte("source"),
			MimeType: "image/png",
			Filename: "cat.png",
		},
	}
}

func TestResizeSuccessPublishesEvent(t *testing.T) {
	proc := new(mockProcessor)
	prod := new(mockProducer)

	req := validRequest()
	proc.On("Resize", mock.Anything, req.Image.Data, 200, 100).
		Return(&processor.Output{Data: []byte("resized"), Format: "png"}, nil).Once()
	prod.On("SendMessage", mock.Anything, "resize-events", mock.MatchedBy(func(e entity.ResizeEvent) bool {
		return e.RequestID == "req-1" && e.Width == 200 && e.Height == 100 &&
			e.SourceBytes == 6 && e.ResultBytes == 7 && !e.Cached && e.Filename == "cat.png"
	})).Return(nil).Once()

	svc := NewImageService(nil, prod, proc, "resize-events")

	result, err := svc.Resize(WithRequestID(context.Background(), "req-1"), req)
	require.NoError(t, err)
	assert.Equal(t, []byte("resized"), result.Data)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, "png", result.Format)
	assert.False(t, result.Cached)

	proc.AssertExpectations(t)
	prod.AssertExpectations(t)
}

func TestResizeUsesCache(t *testing.T) {
	proc := new(mockProcessor)
	prod := new(mockProducer)
	cache, err := database.NewResizeCache(8)
	require.NoError(t, err)

	req := validRequest()
	proc.On("Resize", mock.Anything, req.Image.Data, 200, 100).
		Return(&processor.Output{Data: []byte("resized"), Format: "png"}, nil).Once()
	prod.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewImageService(cache, prod, proc, "resize-events")

	first, err := svc.Resize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Resize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)

	proc.AssertNumberOfCalls(t, "Resize", 1)
	prod.AssertNumberOfCalls(t, "SendMessage", 2)
}

func TestResizeProcessorErrors(t *testing.T) {
	tests := []struct {
		name    string
		procErr error
		wantErr error
	}{
		{name: "decode error kept", procErr: fmt.Errorf("%w: bad header", entity.ErrDecodeImage), wantErr: entity.ErrDecodeImage},
		{name: "timeout kept", procErr: fmt.Errorf("%w: deadline", entity.ErrResizeTimeout), wantErr: entity.ErrResizeTimeout},
		{name: "unknown error wrapped", procErr: errors.New("boom"), wantErr: entity.ErrResizeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := new(mockProcessor)
			prod := new(mockProducer)
			proc.On("Resize", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.procErr)

			svc := NewImageService(nil, prod, proc, "resize-events")

			result, err := svc.Resize(context.Background(), validRequest())
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			prod.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResizePublishErrorDoesNotFail(t *testing.T) {
	proc := new(mockProcessor)
	prod := new(mockProducer)
	proc.On("Resize", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&processor.Output{Data: []byte("resized"), Format: "jpeg"}, nil)
	prod.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := NewImageService(nil, prod, proc, "resize-events")

	result, err := svc.Resize(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("resized"), result.Data)
}

func TestResizeRejectsInvalidRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *entity.ResizeRequest)
		wantErr error
	}{
		{name: "no image data", mutate: func(r *entity.ResizeRequest) { r.Image.Data = nil }, wantErr: entity.ErrMissingFile},
		{name: "zero width", mutate: func(r *entity.ResizeRequest) { r.Width = 0 }, wantErr: entity.ErrInvalidDimensions},
		{name: "negative height", mutate: func(r *entity.ResizeRequest) { r.Height = -3 }, wantErr: entity.ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := new(mockProcessor)
			svc := NewImageService(nil, nil, proc, "resize-events")

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Resize(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			proc.AssertNotCalled(t, "Resize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
