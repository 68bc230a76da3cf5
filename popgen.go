// Package popgen turns a photo into a stylized "pop" character: a structured
// trait record, derived personality and gameplay criteria, and a rendered
// character asset.
//
// The pipeline runs in fixed stages. A captioning provider describes the
// photo; the caption is parsed into a bounded trait model with documented
// defaults; personality scores and game criteria are derived with pure
// numeric formulas; then an ordered chain of generation backends is tried in
// priority order (local 3D server, optional paid 3D service, text-to-image
// fallback). When every external backend is unavailable, a deterministic
// procedural renderer synthesizes the character image locally, so a run that
// got past captioning always produces an asset.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"os"
//
//		"github.com/popforge/popgen"
//	)
//
//	func main() {
//		cfg, err := popgen.LoadConfig()
//		if err != nil {
//			log.Fatal(err)
//		}
//		pipeline, err := popgen.New(cfg, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		photo, err := os.ReadFile("photo.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result, err := pipeline.Generate(context.Background(), photo, popgen.GenerateOptions{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("class=%s provider=%s took=%dms",
//			result.GameCharacter.CharacterClass, result.ModelUsed, result.ProcessingTimeMS)
//	}
//
// The package consists of these components:
//
//  1. Caption (pkg/caption): photo-to-text via an external captioning provider
//  2. Traits (pkg/traits): caption parsing and deterministic trait derivation
//  3. Prompt (pkg/prompt): generation prompt assembly
//  4. Provider (pkg/provider): the ordered generation backend chain
//  5. Render (pkg/render): the deterministic procedural fallback renderer
//  6. Processing (pkg/processing): photo decoding and artifact encoding
package popgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/popforge/popgen/pkg/caption"
	"github.com/popforge/popgen/pkg/processing"
	"github.com/popforge/popgen/pkg/provider"
	"github.com/popforge/popgen/pkg/render"
)

// Version of the popgen library.
const Version = "1.0.0"

// Pipeline orchestrates the photo-to-character generation stages. It holds
// no mutable state between runs: concurrent Generate calls are independent.
type Pipeline struct {
	cfg       Config
	captioner caption.Captioner
	chain     *provider.Chain
	renderer  *render.Renderer
	processor *processing.Processor
	logger    *zap.Logger
}

// New builds a pipeline from configuration: the configured captioning
// backend and the standard provider chain in priority order.
func New(cfg Config, logger *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var captioner caption.Captioner
	switch cfg.CaptionBackend {
	case "ollama":
		c, err := caption.NewOllamaCaptioner(cfg.OllamaURL, cfg.OllamaModel)
		if err != nil {
			return nil, fmt.Errorf("create ollama captioner: %w", err)
		}
		captioner = c
	default:
		captioner = caption.NewHTTPCaptioner(cfg.CaptionURL, cfg.CaptionAPIKey, cfg.ProviderTimeout)
	}

	chain := provider.NewChain(logger,
		provider.NewLocal3D(cfg.Local3DURL, cfg.ProviderTimeout),
		provider.NewRemote3D(cfg.Remote3DURL, cfg.Remote3DAPIKey, cfg.Remote3DEnabled, cfg.ProviderTimeout),
		provider.NewTextToImage(cfg.TextToImageURL, cfg.TextToImageKey, cfg.ProviderTimeout),
	)

	return NewWithComponents(cfg, captioner, chain, logger), nil
}

// NewWithComponents builds a pipeline over explicit components. Tests and
// embedders use this to substitute captioners or provider chains.
func NewWithComponents(cfg Config, captioner caption.Captioner, chain *provider.Chain, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		captioner: captioner,
		chain:     chain,
		renderer:  render.New(),
		processor: processing.New(cfg.MinPhotoSize),
		logger:    logger,
	}
}
