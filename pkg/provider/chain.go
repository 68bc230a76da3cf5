package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/popforge/popgen/pkg/types"
)

// Chain tries a fixed, ordered list of providers and returns the first
// success. Disabled providers are skipped without any network attempt, and a
// failed provider only logs and advances; the chain itself fails only when
// every provider is exhausted.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChain builds a chain over the given providers in priority order.
func NewChain(logger *zap.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{providers: providers, logger: logger}
}

// Providers returns the chain's providers in priority order.
func (c *Chain) Providers() []Provider { return c.providers }

// ImageProvider returns the first enabled provider capable of rendering
// standalone images, or nil if none is configured. Used for t-pose views.
func (c *Chain) ImageProvider() Provider {
	for _, p := range c.providers {
		if _, ok := p.(*TextToImage); ok && p.Enabled() {
			return p
		}
	}
	return nil
}

// Generate walks the providers in order and returns the first produced asset
// together with the name of the provider that produced it. ErrExhausted is
// returned when no provider succeeds.
func (c *Chain) Generate(ctx context.Context, req Request) (*types.Asset, string, error) {
	for _, p := range c.providers {
		if !p.Enabled() {
			c.logger.Debug("skipping disabled provider", zap.String("provider", p.Name()))
			continue
		}

		asset, err := p.Generate(ctx, req)
		if err != nil {
			c.logger.Warn("provider failed, advancing",
				zap.String("provider", p.Name()),
				zap.Error(err))
			continue
		}

		c.logger.Info("provider succeeded",
			zap.String("provider", p.Name()),
			zap.String("kind", string(asset.Kind)),
			zap.Int("bytes", len(asset.Data)))
		return asset, p.Name(), nil
	}

	return nil, "", fmt.Errorf("tried %d providers: %w", len(c.providers), ErrExhausted)
}
