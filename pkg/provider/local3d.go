package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/popforge/popgen/pkg/types"
)

// glbMagic is the 4-byte header of every binary glTF container.
var glbMagic = []byte("glTF")

// Local3D talks to a self-hosted image-to-3D server. It is the first and
// cheapest provider in the chain.
type Local3D struct {
	endpoint string
	client   *http.Client
}

// NewLocal3D builds the local 3D provider for the given endpoint.
func NewLocal3D(endpoint string, timeout time.Duration) *Local3D {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Local3D{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Local3D) Name() string { return "local-3d" }

// Enabled is true whenever an endpoint is configured.
func (p *Local3D) Enabled() bool { return p.endpoint != "" }

type meshRequest struct {
	Image   string `json:"image"`
	Style   string `json:"style"`
	Quality string `json:"quality"`
	Format  string `json:"format"`
}

// Generate submits the photo and returns the produced GLB model.
func (p *Local3D) Generate(ctx context.Context, req Request) (*types.Asset, error) {
	return generateGLB(ctx, p.client, p.endpoint, "", req)
}

// generateGLB implements the shared image-to-GLB exchange used by both 3D
// providers. A connection refusal, non-2xx status, or a body without the GLB
// magic all advance the chain.
func generateGLB(ctx context.Context, client *http.Client, endpoint, apiKey string, req Request) (*types.Asset, error) {
	body, err := json.Marshal(meshRequest{
		Image:   req.ImageB64,
		Style:   req.Style,
		Quality: req.Quality,
		Format:  "glb",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal mesh request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create mesh request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mesh request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mesh endpoint status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mesh response: %w", ErrUnavailable)
	}

	if len(data) < len(glbMagic) || !bytes.Equal(data[:len(glbMagic)], glbMagic) {
		return nil, fmt.Errorf("response is not a GLB container: %w", ErrMalformed)
	}

	return &types.Asset{
		Kind: types.AssetModel,
		MIME: "model/gltf-binary",
		Data: data,
	}, nil
}
