// Package provider implements the ordered generation-backend chain: a local
// free 3D server, an optional paid remote 3D service, and a generic
// text-to-image fallback. Each provider performs a single request/response
// exchange with no retries; the chain advances past any failure.
package provider

import (
	"context"
	"errors"

	"github.com/popforge/popgen/pkg/types"
)

var (
	// ErrUnavailable reports a network, auth, or status failure from a
	// single provider call.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrMalformed reports a 2xx response whose body violates the
	// provider contract. It is handled exactly like ErrUnavailable.
	ErrMalformed = errors.New("malformed provider response")

	// ErrDisabled reports a provider that is switched off by
	// configuration. Disabled providers are skipped without network I/O.
	ErrDisabled = errors.New("provider disabled")

	// ErrExhausted reports that every provider in the chain failed. It is
	// internal to the pipeline: the orchestrator answers it with the
	// procedural renderer, never the caller.
	ErrExhausted = errors.New("all providers exhausted")
)

// Request carries everything a generation backend may need. 3D providers
// consume the photo; the text-to-image fallback consumes the prompt.
type Request struct {
	Prompt         string
	NegativePrompt string
	ImageB64       string
	Style          string
	Quality        string
	Width          int
	Height         int
}

// Provider is a single generation backend.
type Provider interface {
	// Name identifies the provider in logs and in GenerationResult.ModelUsed.
	Name() string

	// Enabled reports whether the provider may be attempted at all.
	Enabled() bool

	// Generate performs one request/response exchange.
	Generate(ctx context.Context, req Request) (*types.Asset, error)
}
