package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/popforge/popgen/pkg/traits"
	"github.com/popforge/popgen/pkg/types"
)

func sampleCharacteristics(caption string) types.Characteristics {
	return traits.DeriveCharacteristics(traits.Parse(caption))
}

func TestRenderDeterministic(t *testing.T) {
	r := New()
	captions := []string{
		"",
		"a young smiling woman with long blonde hair and blue eyes",
		"an angry elderly man with glasses and a gray hair beard",
		"a surprised person with a purple hair mohawk",
	}

	for _, caption := range captions {
		ch := sampleCharacteristics(caption)
		first := r.Render(ch)
		second := r.Render(ch)
		if !bytes.Equal(first.Pix, second.Pix) {
			t.Errorf("caption %q: two renders of identical characteristics differ", caption)
		}
	}
}

func TestRenderCanvasSize(t *testing.T) {
	img := New().Render(sampleCharacteristics(""))
	if img.Bounds().Dx() != DefaultSize || img.Bounds().Dy() != DefaultSize {
		t.Errorf("unexpected canvas %v", img.Bounds())
	}

	small := NewWithSize(128).Render(sampleCharacteristics(""))
	if small.Bounds().Dx() != 128 {
		t.Errorf("unexpected custom canvas %v", small.Bounds())
	}
}

func TestRenderBodyColorKeyedByClass(t *testing.T) {
	r := New()

	warrior := sampleCharacteristics("")
	warrior.Personality = types.Personality{Energy: 90, Confidence: 90}
	explorer := sampleCharacteristics("")
	explorer.Personality = types.Personality{}

	// Sample a pixel inside the torso.
	x, y := DefaultSize/2, DefaultSize*6/10
	warriorBody := r.Render(warrior).RGBAAt(x, y)
	explorerBody := r.Render(explorer).RGBAAt(x, y)

	if warriorBody != classColors[types.ClassWarrior] {
		t.Errorf("warrior torso = %v, want %v", warriorBody, classColors[types.ClassWarrior])
	}
	if explorerBody != classColors[types.ClassExplorer] {
		t.Errorf("explorer torso = %v, want %v", explorerBody, classColors[types.ClassExplorer])
	}
	if warriorBody == explorerBody {
		t.Error("different classes must produce different torso colors")
	}
}

func TestRenderDistinguishesInputs(t *testing.T) {
	r := New()
	blonde := r.Render(sampleCharacteristics("a smiling person with long blonde hair"))
	dark := r.Render(sampleCharacteristics("a smiling person with long black hair"))
	if bytes.Equal(blonde.Pix, dark.Pix) {
		t.Error("different hair colors should change the output")
	}
}

func TestParseHex(t *testing.T) {
	c, ok := parseHex("#8B4513")
	if !ok {
		t.Fatal("expected hex parse to succeed")
	}
	want := color.RGBA{0x8B, 0x45, 0x13, 255}
	if c != want {
		t.Errorf("parseHex = %v, want %v", c, want)
	}

	for _, bad := range []string{"", "#fff", "8B4513", "#8B45ZZ"} {
		if _, ok := parseHex(bad); ok {
			t.Errorf("parseHex(%q) should fail", bad)
		}
	}
}

func TestRenderDefaultHairColorUsesHexFallback(t *testing.T) {
	// The parser's default hair color is a hex string; the renderer must
	// not fall back to a named color silently.
	got := resolveHairColor(traits.DefaultHairColor)
	want := color.RGBA{0x8B, 0x45, 0x13, 255}
	if got != want {
		t.Errorf("resolveHairColor(%q) = %v, want %v", traits.DefaultHairColor, got, want)
	}
}
