package types

// CharacterClass is the gameplay archetype assigned to a generated character.
type CharacterClass string

// The five character classes. Class selection is a fixed-order decision tree
// over personality scores, so exactly one of these is always assigned.
const (
	ClassWarrior  CharacterClass = "Warrior"
	ClassMage     CharacterClass = "Mage"
	ClassHealer   CharacterClass = "Healer"
	ClassRogue    CharacterClass = "Rogue"
	ClassExplorer CharacterClass = "Explorer"
)

// PhotoAnalysis is the structured trait record parsed from a photo caption.
// It is produced once per photo and never mutated afterwards.
type PhotoAnalysis struct {
	FaceShape  string  `json:"face_shape"`
	EyeColor   string  `json:"eye_color"`
	HairColor  string  `json:"hair_color"`
	HairStyle  string  `json:"hair_style"`
	SkinTone   string  `json:"skin_tone"`
	Expression string  `json:"expression"`
	Gender     string  `json:"gender"`
	Age        int     `json:"age"`
	HeightCM   int     `json:"height_cm"`
	WeightKG   int     `json:"weight_kg"`
	Glasses    bool    `json:"glasses"`
	FacialHair bool    `json:"facial_hair"`
	Confidence float64 `json:"confidence"`
}

// EmotionScores holds per-emotion intensities in [0,100], derived from the
// parsed expression. They feed the personality formulas.
type EmotionScores struct {
	Happy     float64 `json:"happy"`
	Neutral   float64 `json:"neutral"`
	Surprised float64 `json:"surprised"`
	Angry     float64 `json:"angry"`
	Fearful   float64 `json:"fearful"`
	Sad       float64 `json:"sad"`
}

// Personality holds the four derived personality scores, each clamped to [0,100].
type Personality struct {
	Energy       float64 `json:"energy"`
	Friendliness float64 `json:"friendliness"`
	Creativity   float64 `json:"creativity"`
	Confidence   float64 `json:"confidence"`
}

// GameAttributes are the gameplay stat potentials, each in [0,100].
type GameAttributes struct {
	HealthPotential float64 `json:"health_potential"`
	SocialSkills    float64 `json:"social_skills"`
	LearningAbility float64 `json:"learning_ability"`
	Adaptability    float64 `json:"adaptability"`
}

// GameCriteria contains the gameplay-facing derivation of a character:
// its class, stat potentials, and special abilities. SpecialAbilities is
// never empty; a default ability is assigned when no threshold is met.
type GameCriteria struct {
	CharacterClass   CharacterClass `json:"character_class"`
	GameAttributes   GameAttributes `json:"game_attributes"`
	SpecialAbilities []string       `json:"special_abilities"`
}

// Characteristics bundles everything known about a character after trait
// derivation. It is the sole input to prompt assembly and to the procedural
// renderer.
type Characteristics struct {
	PhotoAnalysis
	Personality     Personality `json:"personality"`
	Accessories     []string    `json:"accessories"`
	SpecialFeatures []string    `json:"special_features"`
}

// AssetKind distinguishes the payload type of a generated asset.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetModel AssetKind = "model"
)

// Asset is a generated artifact: raster image bytes or a binary 3D model.
type Asset struct {
	Kind AssetKind `json:"kind"`
	MIME string    `json:"mime"`
	Data []byte    `json:"-"`
}

// GenerationResult is the final, immutable product of one pipeline run.
// ModelUsed always names the provider that actually produced the asset,
// or "procedural" when every external backend was unavailable.
type GenerationResult struct {
	ID               string          `json:"id"`
	OriginalImage    string          `json:"original_image,omitempty"`
	Characteristics  Characteristics `json:"characteristics"`
	PopImage         []byte          `json:"-"`
	PopImageMIME     string          `json:"pop_image_mime,omitempty"`
	ModelData        []byte          `json:"-"`
	ModelMIME        string          `json:"model_mime,omitempty"`
	TPoseViews       [][]byte        `json:"-"`
	ProcessingTimeMS int64           `json:"processing_time_ms"`
	ModelUsed        string          `json:"model_used"`
	GameCharacter    *GameCriteria   `json:"game_character,omitempty"`
}
