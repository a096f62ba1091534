package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessedPhoto contains the resized photo and its thumbnail
type ProcessedPhoto struct {
	Photo       []byte
	Thumbnail   []byte
	ContentType string
}

// Config for photo processing
type Config struct {
	MaxWidth   int // max width for stored photo
	MaxHeight  int // max height for stored photo
	ThumbSize  int // square thumbnail edge for member cards
	Quality    int // JPEG quality 1-100
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  1200,
		MaxHeight: 1200,
		ThumbSize: 200,
		Quality:   85,
	}
}

// Processor resizes member photos and produces thumbnails
type Processor struct {
	config Config
}

// NewProcessor creates a photo processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes a member photo, bounds it, and renders a square thumbnail
func (p *Processor) Process(reader io.Reader) (*ProcessedPhoto, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	bounded := img
	if img.Bounds().Dx() > p.config.MaxWidth || img.Bounds().Dy() > p.config.MaxHeight {
		bounded = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	thumb := imaging.Fill(img, p.config.ThumbSize, p.config.ThumbSize, imaging.Center, imaging.Lanczos)

	photoBytes, contentType, err := p.encode(bounded, format)
	if err != nil {
		return nil, err
	}

	thumbBytes, _, err := p.encode(thumb, format)
	if err != nil {
		return nil, err
	}

	return &ProcessedPhoto{
		Photo:       photoBytes,
		Thumbnail:   thumbBytes,
		ContentType: contentType,
	}, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
