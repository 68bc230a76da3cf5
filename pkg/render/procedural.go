// Package render synthesizes a character image directly from derived
// characteristics, with no network dependency. It is the terminal fallback
// of the generation chain: when every external provider is unavailable the
// pipeline still produces an image here.
//
// Rendering is strictly deterministic: identical characteristics yield
// byte-identical pixels, which makes the output snapshot-testable.
package render

import (
	"image"
	"image/color"

	"github.com/popforge/popgen/pkg/traits"
	"github.com/popforge/popgen/pkg/types"
)

// Name identifies the procedural fallback in GenerationResult.ModelUsed.
const Name = "procedural"

// DefaultSize is the square canvas edge in pixels.
const DefaultSize = 512

// classColors key the torso and background tint by character class.
var classColors = map[types.CharacterClass]color.RGBA{
	types.ClassWarrior:  {200, 60, 50, 255},
	types.ClassMage:     {90, 70, 180, 255},
	types.ClassHealer:   {70, 170, 90, 255},
	types.ClassRogue:    {70, 70, 85, 255},
	types.ClassExplorer: {230, 150, 50, 255},
}

var hairColors = map[string]color.RGBA{
	"blonde": {250, 220, 120, 255},
	"brown":  {106, 68, 35, 255},
	"black":  {35, 30, 30, 255},
	"red":    {180, 60, 40, 255},
	"gray":   {150, 150, 155, 255},
	"blue":   {70, 110, 200, 255},
	"pink":   {235, 120, 170, 255},
	"purple": {140, 80, 180, 255},
	"green":  {80, 160, 90, 255},
}

var eyeColors = map[string]color.RGBA{
	"brown":      {102, 60, 32, 255},
	"dark brown": {60, 38, 24, 255},
	"blue":       {60, 110, 190, 255},
	"green":      {70, 140, 80, 255},
	"hazel":      {140, 110, 60, 255},
	"gray":       {130, 135, 140, 255},
}

var skinTones = map[string]color.RGBA{
	"light":  {255, 224, 196, 255},
	"medium": {224, 172, 105, 255},
	"tan":    {198, 134, 66, 255},
	"dark":   {141, 85, 36, 255},
}

// Renderer draws fixed-topology characters on a square canvas.
type Renderer struct {
	size int
}

// New creates a renderer with the default canvas size.
func New() *Renderer {
	return &Renderer{size: DefaultSize}
}

// NewWithSize creates a renderer with a custom square canvas edge.
func NewWithSize(size int) *Renderer {
	if size < 64 {
		size = 64
	}
	return &Renderer{size: size}
}

// Render draws the character: background, body, limbs, shoes, head, hair,
// face, and accessory overlays, all keyed by the characteristics.
func (r *Renderer) Render(ch types.Characteristics) *image.RGBA {
	s := r.size
	img := image.NewRGBA(image.Rect(0, 0, s, s))

	class := traits.DeriveClass(ch.Personality)
	body := classColors[class]
	skin := lookupColor(skinTones, ch.SkinTone, skinTones["medium"])
	hair := resolveHairColor(ch.HairColor)
	eye := lookupColor(eyeColors, ch.EyeColor, eyeColors["brown"])

	// Background: a light tint of the class color.
	fillRect(img, 0, 0, s, s, tint(body, 0.82))

	// Legs and shoes.
	legColor := shade(body, 0.55)
	fillRect(img, r.sc(0.40), r.sc(0.72), r.sc(0.47), r.sc(0.92), legColor)
	fillRect(img, r.sc(0.53), r.sc(0.72), r.sc(0.60), r.sc(0.92), legColor)
	shoe := color.RGBA{45, 40, 38, 255}
	fillEllipse(img, r.sc(0.425), r.sc(0.93), r.sc(0.055), r.sc(0.025), shoe)
	fillEllipse(img, r.sc(0.575), r.sc(0.93), r.sc(0.055), r.sc(0.025), shoe)

	// Torso and arms.
	fillRect(img, r.sc(0.36), r.sc(0.48), r.sc(0.64), r.sc(0.74), body)
	fillRect(img, r.sc(0.30), r.sc(0.50), r.sc(0.36), r.sc(0.68), skin)
	fillRect(img, r.sc(0.64), r.sc(0.50), r.sc(0.70), r.sc(0.68), skin)

	// Head with ears.
	headCX, headCY, headR := r.sc(0.5), r.sc(0.32), r.sc(0.17)
	fillCircle(img, headCX-headR, headCY, r.sc(0.035), skin)
	fillCircle(img, headCX+headR, headCY, r.sc(0.035), skin)
	fillCircle(img, headCX, headCY, headR, skin)

	r.drawHair(img, ch.HairStyle, hair, headCX, headCY, headR)
	r.drawFace(img, ch, eye, headCX, headCY, headR)

	return img
}

func (r *Renderer) drawHair(img *image.RGBA, style string, hair color.RGBA, cx, cy, radius int) {
	// The cap sits above the brow line so the face stays visible.
	capY := cy - r.sc(0.04)

	switch style {
	case "bald":
		// Nothing to draw.
	case "long":
		// A cap plus strands falling past the jawline.
		fillArc(img, cx, capY, radius+r.sc(0.015), hair, true)
		fillRect(img, cx-radius-r.sc(0.01), capY, cx-radius+r.sc(0.035), cy+r.sc(0.20), hair)
		fillRect(img, cx+radius-r.sc(0.035), capY, cx+radius+r.sc(0.01), cy+r.sc(0.20), hair)
	case "mohawk":
		fillRect(img, cx-r.sc(0.025), cy-radius-r.sc(0.075), cx+r.sc(0.025), cy-radius+r.sc(0.04), hair)
	case "ponytail":
		fillArc(img, cx, capY, radius+r.sc(0.01), hair, true)
		fillEllipse(img, cx+radius+r.sc(0.025), cy+r.sc(0.05), r.sc(0.03), r.sc(0.09), hair)
	case "bun":
		fillArc(img, cx, capY, radius+r.sc(0.01), hair, true)
		fillCircle(img, cx, capY-radius-r.sc(0.02), r.sc(0.045), hair)
	case "curly", "afro":
		fillCircle(img, cx-r.sc(0.09), cy-radius+r.sc(0.02), r.sc(0.06), hair)
		fillCircle(img, cx, cy-radius-r.sc(0.02), r.sc(0.065), hair)
		fillCircle(img, cx+r.sc(0.09), cy-radius+r.sc(0.02), r.sc(0.06), hair)
	default:
		// short, straight, wavy, braided, dreadlocks: a simple cap.
		fillArc(img, cx, capY, radius+r.sc(0.01), hair, true)
	}
}

func (r *Renderer) drawFace(img *image.RGBA, ch types.Characteristics, eye color.RGBA, cx, cy, radius int) {
	white := color.RGBA{250, 250, 250, 255}
	dark := color.RGBA{40, 35, 32, 255}

	eyeDX, eyeY := r.sc(0.065), cy-r.sc(0.02)
	fillCircle(img, cx-eyeDX, eyeY, r.sc(0.022), white)
	fillCircle(img, cx+eyeDX, eyeY, r.sc(0.022), white)
	fillCircle(img, cx-eyeDX, eyeY, r.sc(0.012), eye)
	fillCircle(img, cx+eyeDX, eyeY, r.sc(0.012), eye)

	if ch.Glasses {
		frame := color.RGBA{50, 50, 55, 255}
		ringOutline(img, cx-eyeDX, eyeY, r.sc(0.035), r.sc(0.006), frame)
		ringOutline(img, cx+eyeDX, eyeY, r.sc(0.035), r.sc(0.006), frame)
		fillRect(img, cx-r.sc(0.03), eyeY-r.sc(0.004), cx+r.sc(0.03), eyeY+r.sc(0.004), frame)
	}

	// Friendly characters smile; the rest get a straight mouth.
	mouthY := cy + r.sc(0.07)
	if ch.Personality.Friendliness > 60 {
		drawSmile(img, cx, mouthY, r.sc(0.055), r.sc(0.028), dark)
	} else {
		fillRect(img, cx-r.sc(0.04), mouthY, cx+r.sc(0.04), mouthY+r.sc(0.008), dark)
	}

	if ch.FacialHair {
		beard := shade(resolveHairColor(ch.HairColor), 0.8)
		fillRect(img, cx-r.sc(0.06), mouthY+r.sc(0.02), cx+r.sc(0.06), mouthY+r.sc(0.05), beard)
	}
}

// sc scales a fraction of the canvas edge to pixels.
func (r *Renderer) sc(f float64) int {
	return int(f * float64(r.size))
}

func resolveHairColor(name string) color.RGBA {
	if c, ok := hairColors[name]; ok {
		return c
	}
	if c, ok := parseHex(name); ok {
		return c
	}
	return hairColors["brown"]
}

func lookupColor(table map[string]color.RGBA, key string, fallback color.RGBA) color.RGBA {
	if c, ok := table[key]; ok {
		return c
	}
	return fallback
}

// parseHex decodes "#RRGGBB".
func parseHex(s string) (color.RGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[1+2*i])
		lo, ok2 := hexDigit(s[2+2*i])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{v[0], v[1], v[2], 255}, true
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// tint blends a color toward white; factor 1 is pure white.
func tint(c color.RGBA, factor float64) color.RGBA {
	blend := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*factor)
	}
	return color.RGBA{blend(c.R), blend(c.G), blend(c.B), 255}
}

// shade darkens a color; factor 1 keeps it unchanged.
func shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(float64(v) * factor)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), 255}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	bounds := img.Bounds()
	for y := max(y0, bounds.Min.Y); y < min(y1, bounds.Max.Y); y++ {
		for x := max(x0, bounds.Min.X); x < min(x1, bounds.Max.X); x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	fillEllipse(img, cx, cy, radius, radius, c)
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	bounds := img.Bounds()
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !(image.Point{x, y}).In(bounds) {
				continue
			}
			dx := float64(x-cx) / float64(rx)
			dy := float64(y-cy) / float64(ry)
			if dx*dx+dy*dy <= 1.0 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// fillArc paints the upper (or lower) half of a disc.
func fillArc(img *image.RGBA, cx, cy, radius int, c color.RGBA, upper bool) {
	bounds := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		if upper && y > cy {
			continue
		}
		if !upper && y < cy {
			continue
		}
		for x := cx - radius; x <= cx+radius; x++ {
			if !(image.Point{x, y}).In(bounds) {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// ringOutline paints a circle outline of the given thickness.
func ringOutline(img *image.RGBA, cx, cy, radius, thickness int, c color.RGBA) {
	bounds := img.Bounds()
	outer := radius * radius
	innerR := radius - thickness
	inner := innerR * innerR
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !(image.Point{x, y}).In(bounds) {
				continue
			}
			dx, dy := x-cx, y-cy
			d := dx*dx + dy*dy
			if d <= outer && d >= inner {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawSmile paints a downward-opening arc band: the area between two
// parabolas approximating a smile.
func drawSmile(img *image.RGBA, cx, cy, halfWidth, depth int, c color.RGBA) {
	if halfWidth <= 0 {
		return
	}
	bounds := img.Bounds()
	thickness := max(depth/4, 2)
	for x := -halfWidth; x <= halfWidth; x++ {
		// Parabola: deepest at the center, level at the corners.
		drop := depth - (depth*x*x)/(halfWidth*halfWidth)
		for t := 0; t < thickness; t++ {
			px, py := cx+x, cy+drop+t
			if (image.Point{px, py}).In(bounds) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}
