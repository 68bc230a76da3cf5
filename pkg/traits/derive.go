package traits

import (
	"github.com/popforge/popgen/internal/util"
	"github.com/popforge/popgen/pkg/types"
)

// emotionTable maps a parsed expression to fixed per-emotion intensities.
// The table is the single source of emotion signal for every downstream
// formula, so derivation stays deterministic.
var emotionTable = map[string]types.EmotionScores{
	"smiling":   {Happy: 85, Neutral: 10, Surprised: 5},
	"happy":     {Happy: 80, Neutral: 15, Surprised: 10},
	"surprised": {Happy: 30, Neutral: 10, Surprised: 80},
	"angry":     {Neutral: 20, Angry: 75},
	"sad":       {Neutral: 20, Fearful: 10, Sad: 75},
	"fearful":   {Neutral: 15, Surprised: 20, Fearful: 75, Sad: 10},
	"neutral":   {Happy: 20, Neutral: 80},
}

// hairStyleScores rate how expressive a hair style is for the creativity
// formula. Unlisted styles fall back to the base score.
var hairStyleScores = map[string]float64{
	"mohawk":     90,
	"dreadlocks": 80,
	"afro":       75,
	"braided":    70,
	"curly":      60,
	"bun":        60,
	"ponytail":   55,
	"wavy":       55,
	"long":       50,
	"bald":       50,
	"straight":   45,
	"short":      40,
}

// vividHairColors add a bonus to the artistic style score.
var vividHairColors = map[string]bool{
	"blue":   true,
	"pink":   true,
	"purple": true,
	"green":  true,
	"red":    true,
}

const baseStyleScore = 40

// DefaultAbility is assigned when no personality threshold is met, so the
// ability list is never empty.
const DefaultAbility = "Adaptable Spirit"

// Emotions maps the parsed expression to its fixed emotion intensities.
// Unknown expressions use the happy table, matching the parser's bias.
func Emotions(a types.PhotoAnalysis) types.EmotionScores {
	if scores, ok := emotionTable[a.Expression]; ok {
		return scores
	}
	return emotionTable["happy"]
}

// ArtisticStyleScore rates visual expressiveness from hair style and color.
func ArtisticStyleScore(a types.PhotoAnalysis) float64 {
	score := float64(baseStyleScore)
	if s, ok := hairStyleScores[a.HairStyle]; ok {
		score = s
	}
	if vividHairColors[a.HairColor] {
		score += 15
	}
	return util.Clamp100(score)
}

// DerivePersonality computes the four personality scores from the parsed
// analysis. Every score is clamped to [0,100].
func DerivePersonality(a types.PhotoAnalysis) types.Personality {
	e := Emotions(a)
	style := ArtisticStyleScore(a)

	return types.Personality{
		Energy:       util.Clamp100(e.Happy + e.Surprised + 0.5*e.Fearful),
		Friendliness: util.Clamp100(e.Happy + (100 - e.Angry) + 0.3*e.Neutral),
		Creativity:   util.Clamp100(style + 0.4*e.Surprised),
		Confidence:   util.Clamp100(e.Neutral + e.Happy + (100 - e.Fearful)),
	}
}

// DeriveClass walks the class decision tree in fixed order; the first
// matching branch wins, so the result is total and deterministic.
func DeriveClass(p types.Personality) types.CharacterClass {
	switch {
	case p.Energy > 70 && p.Confidence > 70:
		return types.ClassWarrior
	case p.Creativity > 70 && p.Friendliness > 70:
		return types.ClassMage
	case p.Friendliness > 70 && p.Energy > 60:
		return types.ClassHealer
	case p.Confidence > 70 && p.Creativity > 60:
		return types.ClassRogue
	default:
		return types.ClassExplorer
	}
}

// DeriveGameCriteria computes class, stat potentials, and special abilities.
func DeriveGameCriteria(a types.PhotoAnalysis, p types.Personality) types.GameCriteria {
	e := Emotions(a)

	attrs := types.GameAttributes{
		HealthPotential: util.Clamp100(50 + 0.3*e.Happy + 0.2*e.Surprised),
		SocialSkills:    util.Clamp100((p.Friendliness + p.Confidence) / 2),
		LearningAbility: util.Clamp100(50 + 0.3*p.Creativity + 0.2*e.Neutral),
		Adaptability:    util.Clamp100((p.Energy + p.Creativity) / 2),
	}

	return types.GameCriteria{
		CharacterClass:   DeriveClass(p),
		GameAttributes:   attrs,
		SpecialAbilities: deriveAbilities(p, e),
	}
}

// deriveAbilities tests each threshold independently; the result is a set,
// never empty.
func deriveAbilities(p types.Personality, e types.EmotionScores) []string {
	var abilities []string
	if p.Energy > 70 {
		abilities = append(abilities, "Energy Boost")
	}
	if p.Friendliness > 70 {
		abilities = append(abilities, "Charm Aura")
	}
	if p.Creativity > 70 {
		abilities = append(abilities, "Creative Spark")
	}
	if p.Confidence > 70 {
		abilities = append(abilities, "Iron Will")
	}
	if e.Happy > 60 {
		abilities = append(abilities, "Radiant Smile")
	}
	if len(abilities) == 0 {
		abilities = []string{DefaultAbility}
	}
	return abilities
}

// DeriveCharacteristics assembles the full characteristics record consumed
// by prompt assembly and the procedural renderer.
func DeriveCharacteristics(a types.PhotoAnalysis) types.Characteristics {
	p := DerivePersonality(a)

	var accessories []string
	if a.Glasses {
		accessories = append(accessories, "glasses")
	}
	if a.FacialHair {
		accessories = append(accessories, "facial hair")
	}

	var features []string
	if score := ArtisticStyleScore(a); score >= 70 {
		features = append(features, "striking hairstyle")
	}
	if a.Expression == "smiling" || a.Expression == "happy" {
		features = append(features, "warm smile")
	}

	return types.Characteristics{
		PhotoAnalysis:   a,
		Personality:     p,
		Accessories:     accessories,
		SpecialFeatures: features,
	}
}
