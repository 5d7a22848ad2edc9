package transport

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/gin-gonic/gin"
)

const (
	imageField  = "image"
	widthField  = "width"
	heightField = "height"

	// longer width/height values are cut, they cannot be valid anyway
	maxFieldBytes = 64
)

var allowedImageTypes = regexp.MustCompile(`(?i)jpeg|jpg|png|gif`)

// uploadForm is what a resize request carries. Image is nil when no
// non-empty image part was sent.
type uploadForm struct {
	Image  *entity.UploadedImage
	Width  string
	Height string
}

// isAllowedUpload requires both the declared MIME type and the file
// extension to name one of the accepted image types.
func isAllowedUpload(mimeType, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedImageTypes.MatchString(mimeType) && allowedImageTypes.MatchString(ext)
}

// readUploadForm streams the multipart body part by part. The image part is
// checked from its headers before any of its bytes are read, a rejected file
// is never buffered. A body that is not multipart yields an empty form.
func (h *ImageHandler) readUploadForm(c *gin.Context) (*uploadForm, error) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	form := &uploadForm{}

	reader, err := c.Request.MultipartReader()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return form, nil
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrMissingFile, err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, uploadReadError(err)
		}

		switch part.FormName() {
		case imageField:
			if part.FileName() == "" || form.Image != nil {
				break
			}
			img, err := readImagePart(part)
			if err != nil {
				return nil, err
			}
			form.Image = img
		case widthField:
			form.Width, err = readField(part)
		case heightField:
			form.Height, err = readField(part)
		}
		part.Close()
		if err != nil {
			return nil, uploadReadError(err)
		}
	}
}

func readImagePart(part *multipart.Part) (*entity.UploadedImage, error) {
	mimeType := part.Header.Get("Content-Type")
	if !isAllowedUpload(mimeType, part.FileName()) {
		return nil, entity.ErrUnsupportedFileType
	}

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, uploadReadError(err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &entity.UploadedImage{
		Data:     data,
		MimeType: mimeType,
		Filename: part.FileName(),
	}, nil
}

func readField(part *multipart.Part) (string, error) {
	value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func uploadReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
		return entity.ErrUploadTooLarge
	}
	return fmt.Errorf("%w: %v", entity.ErrMissingFile, err)
}
