package entity

import (
	"mime"
	"strings"
	"time"
)

// UploadedImage lives only for the duration of one request.
type UploadedImage struct {
	Data     []byte
	MimeType string
	Filename string
}

// Subtype returns the part of the declared MIME type after the slash,
// e.g. "jpeg" for "image/jpeg".
func (u UploadedImage) Subtype() string {
	mediaType := u.MimeType
	if parsed, _, err := mime.ParseMediaType(u.MimeType); err == nil {
		mediaType = parsed
	}

	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mediaType, '/'); i >= 0 {
		return mediaType[i+1:]
	}
	return mediaType
}

// ContentType is the value sent back with the resized bytes.
func (u UploadedImage) ContentType() string {
	return "image/" + u.Subtype()
}

type ResizeRequest struct {
	Width  int
	Height int
	Image  UploadedImage
}

// NewResizeRequest parses raw form values and only builds a request when
// both dimensions are valid and an image is present.
func NewResizeRequest(image *UploadedImage, rawWidth, rawHeight string, maxDimension int) (ResizeRequest, error) {
	if image == nil {
		return ResizeRequest{}, ErrMissingFile
	}

	width, height, err := ParseDimensions(rawWidth, rawHeight, maxDimension)
	if err != nil {
		return ResizeRequest{}, err
	}

	return ResizeRequest{
		Width:  width,
		Height: height,
		Image:  *image,
	}, nil
}

// Validate checks what every request must satisfy whatever the configured
// cap, the cap itself is applied while parsing.
func (r ResizeRequest) Validate() error {
	if len(r.Image.Data) == 0 {
		return ErrMissingFile
	}
	if r.Width < 1 || r.Height < 1 {
		return ErrInvalidDimensions
	}
	return nil
}

type ResizeResult struct {
	Data        []byte
	ContentType string
	Format      string
	Cached      bool
}

// ResizeEvent is published after every successful resize.
type ResizeEvent struct {
	RequestID   string    `json:"request_id,omitempty"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	SourceBytes int       `json:"source_bytes"`
	ResultBytes int       `json:"result_bytes"`
	Cached      bool      `json:"cached"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
