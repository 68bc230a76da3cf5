package popgen

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/popforge/popgen/pkg/caption"
	"github.com/popforge/popgen/pkg/provider"
	"github.com/popforge/popgen/pkg/types"
)

func TestGenerateEmitsStagesInOrder(t *testing.T) {
	p := testPipeline(t, "a smiling person",
		&fakeProvider{name: "local-3d", enabled: true, err: provider.ErrUnavailable})

	var stages []Stage
	_, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{
		Observer: ObserverFunc(func(e StageEvent) { stages = append(stages, e.Stage) }),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []Stage{StageAnalyzing, StageDerivingTraits, StageGenerating, StageRenderingPreview, StageDone}
	if len(stages) != len(want) {
		t.Fatalf("got stages %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, stages[i], want[i])
		}
	}
}

func TestGenerateFailureOnlyFromAnalyzing(t *testing.T) {
	chain := provider.NewChain(nil, &fakeProvider{name: "local-3d", enabled: true})
	p := NewWithComponents(DefaultConfig(), &caption.Mock{Err: caption.ErrUnavailable}, chain, nil)

	var stages []Stage
	_, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{
		Observer: ObserverFunc(func(e StageEvent) { stages = append(stages, e.Stage) }),
	})
	if err == nil {
		t.Fatal("expected pipeline failure")
	}

	want := []Stage{StageAnalyzing, StageFailed}
	if len(stages) != len(want) || stages[0] != want[0] || stages[1] != want[1] {
		t.Errorf("got stages %v, want %v", stages, want)
	}
}

func TestGenerateSurvivesObserverPanic(t *testing.T) {
	p := testPipeline(t, "a smiling person",
		&fakeProvider{name: "local-3d", enabled: true, err: provider.ErrUnavailable})

	result, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{
		Observer: ObserverFunc(func(e StageEvent) { panic("observer bug") }),
	})
	if err != nil {
		t.Fatalf("observer panic must not abort the pipeline: %v", err)
	}
	if result == nil || len(result.PopImage) == 0 {
		t.Fatal("expected a complete result")
	}
}

func TestChannelObserverReceivesEvents(t *testing.T) {
	p := testPipeline(t, "a smiling person",
		&fakeProvider{name: "local-3d", enabled: true, err: provider.ErrUnavailable})

	observer := NewChannelObserver(16)
	_, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{Observer: observer})
	if err != nil {
		t.Fatal(err)
	}
	observer.Close()

	var count int
	for range observer.Events() {
		count++
	}
	if count != 5 {
		t.Errorf("expected 5 events, got %d", count)
	}
}

func TestGenerateTPoseViewCardinality(t *testing.T) {
	for _, n := range []int{3, 6} {
		p := testPipeline(t, "a smiling person",
			&fakeProvider{name: "local-3d", enabled: true, err: provider.ErrUnavailable})

		result, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{TPoseViews: n})
		if err != nil {
			t.Fatal(err)
		}
		if len(result.TPoseViews) != n {
			t.Fatalf("requested %d views, got %d", n, len(result.TPoseViews))
		}
		for i, view := range result.TPoseViews {
			if len(view) == 0 {
				t.Errorf("view %d is empty", i)
			}
		}

		// Adjacent procedural views use distinct transforms.
		if bytes.Equal(result.TPoseViews[0], result.TPoseViews[1]) {
			t.Error("views 0 and 1 are identical")
		}
	}
}

func TestGenerateRejectsInvalidViewCount(t *testing.T) {
	p := testPipeline(t, "a smiling person", &fakeProvider{name: "local-3d", enabled: true})

	if _, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{TPoseViews: 4}); err == nil {
		t.Fatal("expected an error for unsupported view count")
	}
}

func TestGenerateResultMetadata(t *testing.T) {
	glb := &types.Asset{Kind: types.AssetModel, MIME: "model/gltf-binary", Data: []byte("glTF....")}
	p := testPipeline(t, "a smiling person", &fakeProvider{name: "local-3d", enabled: true, asset: glb})

	result, err := p.Generate(context.Background(), testPhoto(t), GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.ID == "" {
		t.Error("result must carry an ID")
	}
	if result.ProcessingTimeMS < 0 {
		t.Errorf("negative processing time %d", result.ProcessingTimeMS)
	}
	if result.ModelUsed == "" {
		t.Error("ModelUsed must always name the producing backend")
	}
	if !strings.HasPrefix(result.OriginalImage, "data:image/jpeg;base64,") {
		t.Errorf("OriginalImage should be a data URL, got %.40q", result.OriginalImage)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.CaptionBackend = "carrier-pigeon"
	if err := bad.Validate(); err == nil {
		t.Error("unknown caption backend accepted")
	}

	bad = DefaultConfig()
	bad.Remote3DEnabled = true
	bad.Remote3DURL = ""
	if err := bad.Validate(); err == nil {
		t.Error("enabled remote 3D without URL accepted")
	}

	bad = DefaultConfig()
	bad.SendQuality = 0
	if err := bad.Validate(); err == nil {
		t.Error("invalid send quality accepted")
	}
}
