package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/popforge/popgen/pkg/types"
)

// Remote3D talks to a paid hosted image-to-3D service with the same wire
// contract as the local server. It is disabled by default as a cost control;
// the chain never attempts a network call while the flag is off.
type Remote3D struct {
	endpoint string
	apiKey   string
	enabled  bool
	client   *http.Client
}

// NewRemote3D builds the paid 3D provider. Pass enabled=true only when the
// operator has explicitly opted into paid generation.
func NewRemote3D(endpoint, apiKey string, enabled bool, timeout time.Duration) *Remote3D {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Remote3D{
		endpoint: endpoint,
		apiKey:   apiKey,
		enabled:  enabled,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Remote3D) Name() string { return "remote-3d" }

// Enabled requires both the opt-in flag and a configured endpoint.
func (p *Remote3D) Enabled() bool { return p.enabled && p.endpoint != "" }

// Generate submits the photo to the paid service and returns the GLB model.
func (p *Remote3D) Generate(ctx context.Context, req Request) (*types.Asset, error) {
	if !p.Enabled() {
		return nil, fmt.Errorf("remote 3d generation is switched off: %w", ErrDisabled)
	}
	return generateGLB(ctx, p.client, p.endpoint, p.apiKey, req)
}
