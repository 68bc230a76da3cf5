package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/popforge/popgen/pkg/types"
)

// stubProvider counts calls and returns a canned asset or error.
type stubProvider struct {
	name    string
	enabled bool
	asset   *types.Asset
	err     error
	calls   int
}

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Enabled() bool { return s.enabled }

func (s *stubProvider) Generate(ctx context.Context, req Request) (*types.Asset, error) {
	s.calls++
	return s.asset, s.err
}

func imageAsset() *types.Asset {
	return &types.Asset{Kind: types.AssetImage, MIME: "image/png", Data: []byte("png")}
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &stubProvider{name: "local-3d", enabled: true, asset: imageAsset()}
	second := &stubProvider{name: "remote-3d", enabled: true, asset: imageAsset()}
	third := &stubProvider{name: "text-to-image", enabled: true, asset: imageAsset()}
	chain := NewChain(nil, first, second, third)

	asset, name, err := chain.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset == nil {
		t.Fatal("expected an asset")
	}
	if name != "local-3d" {
		t.Errorf("expected local-3d to win, got %q", name)
	}
	if first.calls != 1 {
		t.Errorf("first provider called %d times, want 1", first.calls)
	}
	if second.calls != 0 || third.calls != 0 {
		t.Errorf("later providers must not be invoked after a success: %d, %d", second.calls, third.calls)
	}
}

func TestChainAdvancesOnFailure(t *testing.T) {
	first := &stubProvider{name: "local-3d", enabled: true, err: ErrUnavailable}
	second := &stubProvider{name: "remote-3d", enabled: true, err: ErrMalformed}
	third := &stubProvider{name: "text-to-image", enabled: true, asset: imageAsset()}
	chain := NewChain(nil, first, second, third)

	_, name, err := chain.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if name != "text-to-image" {
		t.Errorf("expected fallback to win, got %q", name)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Errorf("each provider should be attempted exactly once: %d, %d, %d",
			first.calls, second.calls, third.calls)
	}
}

func TestChainSkipsDisabledWithoutCalling(t *testing.T) {
	disabled := &stubProvider{name: "remote-3d", enabled: false, asset: imageAsset()}
	fallback := &stubProvider{name: "text-to-image", enabled: true, asset: imageAsset()}
	chain := NewChain(nil, disabled, fallback)

	_, name, err := chain.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if name != "text-to-image" {
		t.Errorf("expected text-to-image, got %q", name)
	}
	if disabled.calls != 0 {
		t.Errorf("disabled provider was invoked %d times", disabled.calls)
	}
}

func TestChainExhausted(t *testing.T) {
	first := &stubProvider{name: "local-3d", enabled: true, err: ErrUnavailable}
	second := &stubProvider{name: "text-to-image", enabled: true, err: ErrUnavailable}
	chain := NewChain(nil, first, second)

	_, _, err := chain.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestChainNoRetriesWithinProvider(t *testing.T) {
	failing := &stubProvider{name: "local-3d", enabled: true, err: ErrUnavailable}
	chain := NewChain(nil, failing)

	chain.Generate(context.Background(), Request{})
	if failing.calls != 1 {
		t.Errorf("provider must be attempted exactly once per run, got %d", failing.calls)
	}
}

func TestChainImageProvider(t *testing.T) {
	chain := NewChain(nil,
		NewLocal3D("http://localhost:5000/generate", 0),
		NewTextToImage("http://example.test/t2i", "key", 0),
	)
	p := chain.ImageProvider()
	if p == nil || p.Name() != "text-to-image" {
		t.Fatalf("expected the text-to-image provider, got %v", p)
	}

	noImage := NewChain(nil, NewLocal3D("http://localhost:5000/generate", 0))
	if noImage.ImageProvider() != nil {
		t.Error("expected nil when no image provider is configured")
	}
}
