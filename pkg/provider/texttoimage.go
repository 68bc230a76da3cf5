package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/popforge/popgen/pkg/types"
)

// Default diffusion parameters for the text-to-image fallback.
const (
	defaultSteps         = 30
	defaultGuidanceScale = 7.5
	defaultImageSize     = 512
)

// TextToImage is the generic text-to-image fallback: the last external
// provider before procedural rendering. It follows the hosted-inference
// contract of prompt input plus diffusion parameters, answering with raw
// image bytes.
type TextToImage struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewTextToImage builds the text-to-image provider.
func NewTextToImage(endpoint, apiKey string, timeout time.Duration) *TextToImage {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &TextToImage{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *TextToImage) Name() string { return "text-to-image" }

// Enabled requires an endpoint and a credential: hosted inference rejects
// anonymous calls, so skipping early saves the round trip.
func (p *TextToImage) Enabled() bool { return p.endpoint != "" && p.apiKey != "" }

type diffusionParams struct {
	Steps          int     `json:"steps"`
	GuidanceScale  float64 `json:"guidance_scale"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
}

type diffusionRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters diffusionParams `json:"parameters"`
}

// Generate renders the prompt and returns the image bytes.
func (p *TextToImage) Generate(ctx context.Context, req Request) (*types.Asset, error) {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultImageSize
	}
	if height <= 0 {
		height = defaultImageSize
	}

	body, err := json.Marshal(diffusionRequest{
		Inputs: req.Prompt,
		Parameters: diffusionParams{
			Steps:          defaultSteps,
			GuidanceScale:  defaultGuidanceScale,
			NegativePrompt: req.NegativePrompt,
			Width:          width,
			Height:         height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal diffusion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create diffusion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("diffusion request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("diffusion endpoint status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("diffusion endpoint answered %q, expected an image: %w", contentType, ErrMalformed)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read diffusion response: %w", ErrUnavailable)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body: %w", ErrMalformed)
	}

	return &types.Asset{
		Kind: types.AssetImage,
		MIME: contentType,
		Data: data,
	}, nil
}
