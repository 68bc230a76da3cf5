// Package traits converts free-text photo captions into the structured
// character trait model and derives personality scores, gameplay criteria,
// and generation characteristics from it. Everything in this package is a
// deterministic computation: parsing and derivation never fail, falling back
// to documented defaults when the caption gives no signal.
package traits

import (
	"math/rand"
	"strings"

	"github.com/popforge/popgen/pkg/types"
)

// Documented defaults used when no keyword matches. The hair color default
// is a mid-brown hex rather than a name so the renderer always has a usable
// color even for captions that never mention hair.
const (
	DefaultFaceShape  = "round"
	DefaultHairColor  = "#8B4513"
	DefaultHairStyle  = "short"
	DefaultEyeColor   = "brown"
	DefaultSkinTone   = "medium"
	DefaultExpression = "happy"
	DefaultGender     = "unknown"
	DefaultAge        = 25
	DefaultHeightCM   = 170
	DefaultWeightKG   = 70

	// ParseConfidence is fixed: the keyword matcher has no real
	// uncertainty model.
	ParseConfidence = 0.8
)

// keywordRule maps a caption substring to a canonical field value. Rules are
// evaluated in order and the first match wins.
type keywordRule struct {
	keyword string
	value   string
}

var faceShapeRules = []keywordRule{
	{"oval", "oval"},
	{"square jaw", "square"},
	{"square face", "square"},
	{"angular", "square"},
	{"heart-shaped", "heart"},
	{"heart shaped", "heart"},
	{"narrow face", "long"},
	{"long face", "long"},
	{"round", "round"},
}

var hairColorRules = []keywordRule{
	{"blonde", "blonde"},
	{"blond", "blonde"},
	{"brunette", "brown"},
	{"brown hair", "brown"},
	{"black hair", "black"},
	{"dark hair", "black"},
	{"red hair", "red"},
	{"redhead", "red"},
	{"ginger", "red"},
	{"auburn", "red"},
	{"gray hair", "gray"},
	{"grey hair", "gray"},
	{"silver hair", "gray"},
	{"white hair", "gray"},
	{"blue hair", "blue"},
	{"pink hair", "pink"},
	{"purple hair", "purple"},
	{"green hair", "green"},
}

var hairStyleRules = []keywordRule{
	{"bald", "bald"},
	{"mohawk", "mohawk"},
	{"ponytail", "ponytail"},
	{"bun", "bun"},
	{"braid", "braided"},
	{"dreadlock", "dreadlocks"},
	{"afro", "afro"},
	{"curly", "curly"},
	{"wavy", "wavy"},
	{"straight hair", "straight"},
	{"long", "long"},
	{"short", "short"},
}

var eyeColorRules = []keywordRule{
	{"blue eye", "blue"},
	{"green eye", "green"},
	{"hazel eye", "hazel"},
	{"gray eye", "gray"},
	{"grey eye", "gray"},
	{"dark eye", "dark brown"},
	{"brown eye", "brown"},
}

var skinToneRules = []keywordRule{
	{"pale", "light"},
	{"fair skin", "light"},
	{"light skin", "light"},
	{"dark skin", "dark"},
	{"dark-skinned", "dark"},
	{"brown skin", "dark"},
	{"tanned", "tan"},
	{"tan skin", "tan"},
	{"olive", "tan"},
}

var expressionRules = []keywordRule{
	{"smiling", "smiling"},
	{"smile", "happy"},
	{"laughing", "happy"},
	{"grinning", "happy"},
	{"cheerful", "happy"},
	{"happy", "happy"},
	{"joyful", "happy"},
	{"surprised", "surprised"},
	{"shocked", "surprised"},
	{"amazed", "surprised"},
	{"angry", "angry"},
	{"frowning", "angry"},
	{"scowling", "angry"},
	{"crying", "sad"},
	{"sad", "sad"},
	{"upset", "sad"},
	{"scared", "fearful"},
	{"afraid", "fearful"},
	{"fearful", "fearful"},
	{"anxious", "fearful"},
	{"nervous", "fearful"},
	{"serious", "neutral"},
	{"stern", "neutral"},
	{"calm", "neutral"},
	{"neutral", "neutral"},
}

var glassesKeywords = []string{"glasses", "spectacles", "eyeglasses", "sunglasses"}

var facialHairKeywords = []string{"beard", "mustache", "moustache", "goatee", "stubble"}

// ageBucket is a keyword-selected age range. The canonical parse uses the
// fixed midpoint; the variety option picks uniformly inside the range.
type ageBucket struct {
	keywords []string
	lo, hi   int
	mid      int
}

var ageBuckets = []ageBucket{
	{[]string{"elderly", "senior", "old man", "old woman", "grandmother", "grandfather"}, 65, 85, 75},
	{[]string{"young", "teen", "teenager", "youth", "boy", "girl", "child", "kid"}, 15, 30, 22},
	{[]string{"middle-aged", "middle aged", "adult"}, 30, 50, 40},
}

// Parser converts captions into PhotoAnalysis records. The zero-value
// parser is the canonical deterministic one.
type Parser struct {
	rng *rand.Rand
}

// NewParser returns the canonical parser: identical captions always produce
// identical records.
func NewParser() *Parser {
	return &Parser{}
}

// NewParserWithVariety returns a parser that picks unknown age values
// uniformly within the matched bucket instead of using the fixed midpoint.
// The seed makes runs reproducible; this is an opt-in product behavior, not
// the default.
func NewParserWithVariety(seed int64) *Parser {
	return &Parser{rng: rand.New(rand.NewSource(seed))}
}

// Parse converts a caption into a PhotoAnalysis. An empty caption is not an
// error: every field falls back to its documented default. Gender is never
// inferred from appearance keywords and is always "unknown".
func (p *Parser) Parse(caption string) types.PhotoAnalysis {
	text := strings.ToLower(caption)

	return types.PhotoAnalysis{
		FaceShape:  matchKeyword(text, faceShapeRules, DefaultFaceShape),
		EyeColor:   matchKeyword(text, eyeColorRules, DefaultEyeColor),
		HairColor:  matchKeyword(text, hairColorRules, DefaultHairColor),
		HairStyle:  matchKeyword(text, hairStyleRules, DefaultHairStyle),
		SkinTone:   matchKeyword(text, skinToneRules, DefaultSkinTone),
		Expression: matchKeyword(text, expressionRules, DefaultExpression),
		Gender:     DefaultGender,
		Age:        p.matchAge(text),
		HeightCM:   DefaultHeightCM,
		WeightKG:   DefaultWeightKG,
		Glasses:    containsAny(text, glassesKeywords),
		FacialHair: containsAny(text, facialHairKeywords),
		Confidence: ParseConfidence,
	}
}

// Parse runs the canonical deterministic parser on a caption.
func Parse(caption string) types.PhotoAnalysis {
	return NewParser().Parse(caption)
}

func (p *Parser) matchAge(text string) int {
	for _, bucket := range ageBuckets {
		if containsAny(text, bucket.keywords) {
			if p.rng != nil {
				return bucket.lo + p.rng.Intn(bucket.hi-bucket.lo+1)
			}
			return bucket.mid
		}
	}
	return DefaultAge
}

func matchKeyword(text string, rules []keywordRule, fallback string) string {
	for _, rule := range rules {
		if strings.Contains(text, rule.keyword) {
			return rule.value
		}
	}
	return fallback
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Overrides carries explicit user-provided attributes. A non-nil field
// always takes precedence over the parsed value.
type Overrides struct {
	Age      *int
	HeightCM *int
	WeightKG *int
}

// Apply returns a copy of the analysis with the overrides applied.
func (o Overrides) Apply(a types.PhotoAnalysis) types.PhotoAnalysis {
	if o.Age != nil {
		a.Age = *o.Age
	}
	if o.HeightCM != nil {
		a.HeightCM = *o.HeightCM
	}
	if o.WeightKG != nil {
		a.WeightKG = *o.WeightKG
	}
	return a
}
