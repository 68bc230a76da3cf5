package prompt

import (
	"strings"
	"testing"

	"github.com/popforge/popgen/pkg/traits"
	"github.com/popforge/popgen/pkg/types"
)

func TestBuildContainsTraits(t *testing.T) {
	ch := traits.DeriveCharacteristics(traits.Parse("a young smiling woman with long blonde hair and blue eyes"))
	p := Build(ch, types.ClassHealer)

	for _, want := range []string{
		StyleTemplate,
		"blonde long hair",
		"blue eyes",
		"smiling expression",
		"gentle welcoming pose",
		"single subject",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	ch := traits.DeriveCharacteristics(traits.Parse("an elderly person with glasses"))
	first := Build(ch, types.ClassExplorer)
	for i := 0; i < 5; i++ {
		if got := Build(ch, types.ClassExplorer); got != first {
			t.Fatal("prompt assembly is not deterministic")
		}
	}
}

func TestBuildHexHairColorReadable(t *testing.T) {
	ch := traits.DeriveCharacteristics(traits.Parse(""))
	p := Build(ch, types.ClassExplorer)

	if strings.Contains(p, "#") {
		t.Errorf("hex color leaked into prompt:\n%s", p)
	}
	if !strings.Contains(p, "brown short hair") {
		t.Errorf("default hair phrase missing:\n%s", p)
	}
}

func TestNegativePromptSingleSubjectConstraints(t *testing.T) {
	for _, want := range []string{"multiple people", "multi-panel", "collage"} {
		if !strings.Contains(NegativePrompt, want) {
			t.Errorf("negative prompt missing %q", want)
		}
	}
}
