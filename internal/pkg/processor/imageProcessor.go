package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/image-resizer/internal/entity"
)

type ImageProcessor interface {
	Resize(ctx context.Context, data []byte, width, height int) (*Output, error)
}

// Output is the encoded result and the codec that produced it.
type Output struct {
	Data   []byte
	Format string
}

type imageProcessor struct {
	jpegQuality int
	background  color.Color
}

func NewImageProcessor(jpegQuality int) ImageProcessor {
	return &imageProcessor{
		jpegQuality: jpegQuality,
		background:  color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// Resize runs the contain fit in its own goroutine so a cancelled request
// stops waiting for it.
func (p *imageProcessor) Resize(ctx context.Context, data []byte, width, height int) (*Output, error) {
	type result struct {
		out *Output
		err error
	}

	done := make(chan result, 1)
	go func() {
		out, err := p.resize(data, width, height)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", entity.ErrResizeTimeout, ctx.Err())
	case r := <-done:
		return r.out, r.err
	}
}

func (p *imageProcessor) resize(data []byte, width, height int) (*Output, error) {
	if width < 1 || height < 1 {
		return nil, entity.ErrInvalidDimensions
	}

	img, format, err := p.loadImage(data)
	if err != nil {
		return nil, err
	}

	processed := p.contain(img, width, height)

	encoded, err := p.saveImage(processed, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrResizeFailed, err)
	}

	return &Output{Data: encoded, Format: format}, nil
}

// contain scales img to fit inside width x height keeping its aspect ratio
// and centers it on a canvas of exactly that size.
func (p *imageProcessor) contain(img image.Image, width, height int) image.Image {
	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	fitW, fitH := containSize(srcW, srcH, width, height)

	scaled := imaging.Resize(img, fitW, fitH, imaging.Lanczos)
	canvas := imaging.New(width, height, p.background)
	return imaging.PasteCenter(canvas, scaled)
}

func containSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW < 1 || srcH < 1 {
		return boxW, boxH
	}

	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	w := clamp(int(math.Round(float64(srcW)*scale)), 1, boxW)
	h := clamp(int(math.Round(float64(srcH)*scale)), 1, boxH)
	return w, h
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (p *imageProcessor) loadImage(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecodeImage, err)
	}

	if format == "gif" {
		return p.processGif(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecodeImage, err)
	}
	return img, format, nil
}

func (p *imageProcessor) processGif(data []byte) (image.Image, string, error) {
	gifImg, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecodeImage, err)
	}

	// Возвращаем первый кадр
	if len(gifImg.Image) > 0 {
		return gifImg.Image[0], "gif", nil
	}

	return nil, "", fmt.Errorf("%w: no frames in GIF", entity.ErrDecodeImage)
}

func (p *imageProcessor) saveImage(img image.Image, format string) ([]byte, error) {
	outputFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, err
	}

	var opts []imaging.EncodeOption
	if outputFormat == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(p.jpegQuality))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, outputFormat, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
