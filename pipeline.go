package popgen

import (
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/popforge/popgen/pkg/processing"
	"github.com/popforge/popgen/pkg/prompt"
	"github.com/popforge/popgen/pkg/provider"
	"github.com/popforge/popgen/pkg/render"
	"github.com/popforge/popgen/pkg/traits"
	"github.com/popforge/popgen/pkg/types"
)

// T-pose view sets. Views are ordered; the result slice preserves this order
// and always has exactly the requested cardinality.
var (
	viewAngles3 = []string{"front view, T-pose", "left side view, T-pose", "back view, T-pose"}
	viewAngles6 = []string{
		"front view, T-pose", "three-quarter left view, T-pose", "left side view, T-pose",
		"back view, T-pose", "right side view, T-pose", "three-quarter right view, T-pose",
	}
)

// GenerateOptions tunes a single pipeline run.
type GenerateOptions struct {
	// Overrides are explicit user-provided attributes; they always take
	// precedence over parsed values.
	Overrides traits.Overrides

	// TPoseViews requests a fixed set of character views for 3D
	// reconstruction. Valid values: 0 (none), 3, or 6.
	TPoseViews int

	// VarietySeed opts into randomized in-bucket trait defaults. The
	// canonical run (nil) is fully deterministic for a given caption.
	VarietySeed *int64

	// Observer receives stage progress events; may be nil.
	Observer StageObserver
}

// Generate runs the full pipeline on a photo. Caption extraction is the
// only stage that can fail the run; once traits exist, a degraded result is
// always produced, with ModelUsed naming whichever backend (or the
// procedural fallback) rendered the asset.
func (p *Pipeline) Generate(ctx context.Context, photo []byte, opts GenerateOptions) (*types.GenerationResult, error) {
	if opts.TPoseViews != 0 && opts.TPoseViews != 3 && opts.TPoseViews != 6 {
		return nil, fmt.Errorf("t-pose views must be 0, 3, or 6, got %d", opts.TPoseViews)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PipelineTimeout)
	defer cancel()

	start := time.Now()

	// Analyzing: decode the photo and extract a caption. This is the one
	// stage allowed to hard-fail: without a description there is no trait
	// basis for anything downstream.
	p.emit(opts.Observer, StageEvent{Stage: StageAnalyzing, Label: "analyzing photo"})

	img, err := p.processor.Decode(photo)
	if err != nil {
		p.emit(opts.Observer, StageEvent{Stage: StageFailed, Label: "photo decode failed"})
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	if err := p.processor.Validate(img); err != nil {
		p.emit(opts.Observer, StageEvent{Stage: StageFailed, Label: "photo rejected"})
		return nil, err
	}

	imageB64, err := p.processor.PrepareForModel(img, p.cfg.MaxSendSize, p.cfg.SendQuality)
	if err != nil {
		p.emit(opts.Observer, StageEvent{Stage: StageFailed, Label: "photo preparation failed"})
		return nil, err
	}

	text, err := p.captioner.Caption(ctx, imageB64)
	if err != nil {
		p.emit(opts.Observer, StageEvent{Stage: StageFailed, Label: "caption extraction failed"})
		return nil, fmt.Errorf("extract caption: %w", err)
	}
	p.logger.Info("photo captioned", zap.String("caption", text))

	// DerivingTraits: pure computation, cannot fail.
	p.emit(opts.Observer, StageEvent{Stage: StageDerivingTraits, Label: "deriving traits", Payload: text})

	parser := traits.NewParser()
	if opts.VarietySeed != nil {
		parser = traits.NewParserWithVariety(*opts.VarietySeed)
	}
	analysis := opts.Overrides.Apply(parser.Parse(text))
	personality := traits.DerivePersonality(analysis)
	criteria := traits.DeriveGameCriteria(analysis, personality)
	characteristics := traits.DeriveCharacteristics(analysis)

	// Generating: walk the provider chain.
	p.emit(opts.Observer, StageEvent{Stage: StageGenerating, Label: "generating character", Payload: criteria.CharacterClass})

	req := provider.Request{
		Prompt:         prompt.Build(characteristics, criteria.CharacterClass),
		NegativePrompt: prompt.NegativePrompt,
		ImageB64:       imageB64,
		Style:          "pop",
		Quality:        "standard",
	}

	result := &types.GenerationResult{
		ID:              uuid.NewString(),
		OriginalImage:   "data:image/jpeg;base64," + imageB64,
		Characteristics: characteristics,
		GameCharacter:   &criteria,
	}

	asset, providerName, err := p.chain.Generate(ctx, req)
	switch {
	case err != nil:
		// Exhausted chain: degrade to the procedural renderer. The
		// caller never sees this as a failure.
		p.logger.Warn("provider chain exhausted, rendering procedurally", zap.Error(err))
		result.ModelUsed = render.Name
	case asset.Kind == types.AssetModel:
		result.ModelUsed = providerName
		result.ModelData = asset.Data
		result.ModelMIME = asset.MIME
	default:
		result.ModelUsed = providerName
		result.PopImage = asset.Data
		result.PopImageMIME = asset.MIME
	}

	// RenderingPreview: every result carries a 2D preview image. Runs
	// that got a 3D model (or nothing) from the chain get a procedural
	// preview of the same characteristics.
	p.emit(opts.Observer, StageEvent{Stage: StageRenderingPreview, Label: "rendering preview", Payload: result.ModelUsed})

	if result.PopImage == nil {
		preview, err := processing.EncodePNG(p.renderer.Render(characteristics))
		if err != nil {
			return nil, fmt.Errorf("encode procedural preview: %w", err)
		}
		result.PopImage = preview
		result.PopImageMIME = "image/png"
	}

	if opts.TPoseViews > 0 {
		result.TPoseViews = p.generateViews(ctx, characteristics, criteria.CharacterClass, opts.TPoseViews)
	}

	result.ProcessingTimeMS = time.Since(start).Milliseconds()
	p.emit(opts.Observer, StageEvent{Stage: StageDone, Label: "done", Payload: result.ID})
	return result, nil
}

// generateViews produces the ordered t-pose view set. Each view goes through
// the chain's image provider when one is configured; any per-view failure
// degrades that view to a deterministic procedural variant, so the result
// always has the requested cardinality.
func (p *Pipeline) generateViews(ctx context.Context, ch types.Characteristics, class types.CharacterClass, n int) [][]byte {
	angles := viewAngles3
	if n == 6 {
		angles = viewAngles6
	}

	views := make([][]byte, len(angles))
	imageProvider := p.chain.ImageProvider()

	workers := pool.New().WithContext(ctx)
	for i, angle := range angles {
		workers.Go(func(ctx context.Context) error {
			if imageProvider != nil {
				req := provider.Request{
					Prompt:         prompt.Build(ch, class) + ", " + angle,
					NegativePrompt: prompt.NegativePrompt,
				}
				if asset, err := imageProvider.Generate(ctx, req); err == nil {
					views[i] = asset.Data
					return nil
				}
				p.logger.Warn("view generation failed, using procedural variant",
					zap.String("angle", angle))
			}

			data, err := p.proceduralView(ch, i)
			if err != nil {
				return err
			}
			views[i] = data
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		p.logger.Warn("view generation incomplete", zap.Error(err))
	}

	// Backstop: no view slot may stay empty.
	for i := range views {
		if views[i] == nil {
			if data, err := p.proceduralView(ch, i); err == nil {
				views[i] = data
			}
		}
	}
	return views
}

// proceduralView renders the character and applies a fixed per-index
// transform so each view is distinct yet deterministic.
func (p *Pipeline) proceduralView(ch types.Characteristics, index int) ([]byte, error) {
	base := p.renderer.Render(ch)
	switch index % 3 {
	case 1:
		return processing.EncodePNG(imaging.AdjustBrightness(base, -12))
	case 2:
		return processing.EncodePNG(imaging.Grayscale(base))
	default:
		return processing.EncodePNG(base)
	}
}

// emit delivers a stage event, isolating the pipeline from observer panics.
func (p *Pipeline) emit(observer StageObserver, event StageEvent) {
	if observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("stage observer panicked",
				zap.String("stage", string(event.Stage)),
				zap.Any("panic", r))
		}
	}()
	observer.OnStage(event)
}
