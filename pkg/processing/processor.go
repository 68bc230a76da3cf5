// Package processing handles photo intake and artifact encoding: decoding
// uploads (JPEG, PNG, WebP), loading from files, URLs, or data URLs,
// validating minimum dimensions, and preparing a downscaled base64 payload
// for captioning providers.
package processing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Processor handles photo decoding and encoding operations.
type Processor struct {
	minPhotoSize int
	httpClient   *http.Client
}

// New creates a processor with the given minimum photo edge in pixels.
func New(minPhotoSize int) *Processor {
	if minPhotoSize < 1 {
		minPhotoSize = 1
	}
	return &Processor{
		minPhotoSize: minPhotoSize,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Decode decodes photo bytes with WebP support.
func (p *Processor) Decode(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// LoadFile loads a photo from disk.
func (p *Processor) LoadFile(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return p.Decode(data)
}

// LoadURL downloads and decodes a photo from an http(s) URL.
func (p *Processor) LoadURL(photoURL string) (image.Image, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s", parsedURL.Scheme)
	}

	resp, err := p.httpClient.Get(photoURL)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download photo: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL is not an image (Content-Type: %s)", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read photo data: %w", err)
	}
	return p.Decode(data)
}

// Load accepts a file path, an http(s) URL, or a base64 data URL.
func (p *Processor) Load(source string) (image.Image, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		data, err := DecodeDataURL(source)
		if err != nil {
			return nil, err
		}
		return p.Decode(data)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return p.LoadURL(source)
	default:
		return p.LoadFile(source)
	}
}

// Validate checks that the photo meets minimum size requirements.
func (p *Processor) Validate(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < p.minPhotoSize || bounds.Dy() < p.minPhotoSize {
		return fmt.Errorf("photo too small: %dx%d (minimum: %d)",
			bounds.Dx(), bounds.Dy(), p.minPhotoSize)
	}
	return nil
}

// PrepareForModel downscales the photo so its long side does not exceed
// maxDim (0 keeps the original size), re-encodes it as JPEG at the given
// quality, and returns base64 for captioning and 3D providers.
func (p *Processor) PrepareForModel(img image.Image, maxDim, quality int) (string, error) {
	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			if b.Dx() >= b.Dy() {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}
	if quality < 1 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode photo for model: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodePNG encodes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes an image to WebP bytes at the given quality.
func EncodeWebP(img image.Image, quality int, lossless bool) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = 90
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: lossless, Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataURL extracts raw bytes from a base64 data URL, or from a bare
// base64 string.
func DecodeDataURL(s string) ([]byte, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		payload = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return data, nil
}
