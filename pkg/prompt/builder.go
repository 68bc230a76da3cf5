// Package prompt assembles the text-to-image generation prompt from derived
// character characteristics. Assembly is pure string concatenation: the same
// characteristics always produce the same prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/popforge/popgen/pkg/types"
)

// StyleTemplate is the fixed style preamble for every generated character.
const StyleTemplate = "cute pop style caricature character, 3D render look, " +
	"soft studio lighting, vibrant colors, clean background"

// NegativePrompt is the fixed block of composition constraints. It keeps the
// output a single, full-body subject instead of a collage.
const NegativePrompt = "multiple people, multi-panel, collage, grid, split frame, " +
	"text, watermark, logo, cropped head, deformed hands, extra limbs, blurry, " +
	"photorealistic skin"

// classMoods contribute a class-flavored phrase to the prompt.
var classMoods = map[types.CharacterClass]string{
	types.ClassWarrior:  "bold heroic pose",
	types.ClassMage:     "mystical thoughtful pose",
	types.ClassHealer:   "gentle welcoming pose",
	types.ClassRogue:    "sly confident pose",
	types.ClassExplorer: "curious adventurous pose",
}

// Build assembles the generation prompt: style template, enumerated trait
// phrases, then the class mood. The negative constraints travel separately
// (see NegativePrompt) because the text-to-image contract carries them in a
// dedicated parameter.
func Build(ch types.Characteristics, class types.CharacterClass) string {
	var parts []string
	parts = append(parts, StyleTemplate)

	parts = append(parts, fmt.Sprintf("%s face", ch.FaceShape))
	parts = append(parts, fmt.Sprintf("%s %s hair", describeColor(ch.HairColor), ch.HairStyle))
	parts = append(parts, fmt.Sprintf("%s eyes", ch.EyeColor))
	parts = append(parts, fmt.Sprintf("%s skin tone", ch.SkinTone))
	parts = append(parts, fmt.Sprintf("%s expression", ch.Expression))

	for _, acc := range ch.Accessories {
		parts = append(parts, "wearing "+acc)
	}
	parts = append(parts, ch.SpecialFeatures...)

	if mood, ok := classMoods[class]; ok {
		parts = append(parts, mood)
	}

	parts = append(parts, "single subject, full body, centered")
	return strings.Join(parts, ", ")
}

// describeColor keeps hex defaults readable inside a text prompt.
func describeColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return "brown"
	}
	return c
}
