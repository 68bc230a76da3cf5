package traits

import (
	"testing"

	"github.com/popforge/popgen/pkg/types"
)

func TestParseYoungSmilingBlonde(t *testing.T) {
	a := Parse("a young smiling woman with long blonde hair")

	if a.HairColor != "blonde" {
		t.Errorf("expected hair color blonde, got %q", a.HairColor)
	}
	if a.HairStyle != "long" {
		t.Errorf("expected hair style long, got %q", a.HairStyle)
	}
	if a.Expression != "smiling" {
		t.Errorf("expected expression smiling, got %q", a.Expression)
	}
	if a.Age < 15 || a.Age > 30 {
		t.Errorf("expected age in [15,30], got %d", a.Age)
	}
	if a.Gender != "unknown" {
		t.Errorf("gender must never be inferred from appearance, got %q", a.Gender)
	}
}

func TestParseEmptyCaptionDefaults(t *testing.T) {
	a := Parse("")

	want := types.PhotoAnalysis{
		FaceShape:  DefaultFaceShape,
		EyeColor:   DefaultEyeColor,
		HairColor:  DefaultHairColor,
		HairStyle:  DefaultHairStyle,
		SkinTone:   DefaultSkinTone,
		Expression: DefaultExpression,
		Gender:     DefaultGender,
		Age:        DefaultAge,
		HeightCM:   DefaultHeightCM,
		WeightKG:   DefaultWeightKG,
		Confidence: ParseConfidence,
	}
	if a != want {
		t.Errorf("empty caption should yield documented defaults:\n got %+v\nwant %+v", a, want)
	}
}

func TestParseNoRecognizedKeywords(t *testing.T) {
	// Nothing in this caption matches any trait table.
	a := Parse("xyzzy qwfp zzz")
	b := Parse("")
	if a != b {
		t.Errorf("unrecognized caption should equal defaults:\n got %+v\nwant %+v", a, b)
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		check   func(t *testing.T, a types.PhotoAnalysis)
	}{
		{"oval face", "portrait with an oval face", func(t *testing.T, a types.PhotoAnalysis) {
			if a.FaceShape != "oval" {
				t.Errorf("got face shape %q", a.FaceShape)
			}
		}},
		{"blue eyes", "a man with blue eyes", func(t *testing.T, a types.PhotoAnalysis) {
			if a.EyeColor != "blue" {
				t.Errorf("got eye color %q", a.EyeColor)
			}
		}},
		{"red hair", "person with curly red hair", func(t *testing.T, a types.PhotoAnalysis) {
			if a.HairColor != "red" {
				t.Errorf("got hair color %q", a.HairColor)
			}
			if a.HairStyle != "curly" {
				t.Errorf("got hair style %q", a.HairStyle)
			}
		}},
		{"pale skin", "a pale serious person", func(t *testing.T, a types.PhotoAnalysis) {
			if a.SkinTone != "light" {
				t.Errorf("got skin tone %q", a.SkinTone)
			}
			if a.Expression != "neutral" {
				t.Errorf("got expression %q", a.Expression)
			}
		}},
		{"elderly", "an elderly person with glasses and a beard", func(t *testing.T, a types.PhotoAnalysis) {
			if a.Age < 65 || a.Age > 85 {
				t.Errorf("got age %d", a.Age)
			}
			if !a.Glasses {
				t.Error("expected glasses")
			}
			if !a.FacialHair {
				t.Error("expected facial hair")
			}
		}},
		{"middle aged", "a middle-aged adult", func(t *testing.T, a types.PhotoAnalysis) {
			if a.Age < 30 || a.Age > 50 {
				t.Errorf("got age %d", a.Age)
			}
		}},
		{"mohawk", "person with a purple hair mohawk", func(t *testing.T, a types.PhotoAnalysis) {
			if a.HairStyle != "mohawk" {
				t.Errorf("got hair style %q", a.HairStyle)
			}
			if a.HairColor != "purple" {
				t.Errorf("got hair color %q", a.HairColor)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Parse(tt.caption))
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	caption := "a young smiling woman with long blonde hair"
	first := Parse(caption)
	for i := 0; i < 10; i++ {
		if got := Parse(caption); got != first {
			t.Fatalf("parse is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestParserVarietyStaysInBucket(t *testing.T) {
	p := NewParserWithVariety(42)
	for i := 0; i < 50; i++ {
		a := p.Parse("a young person")
		if a.Age < 15 || a.Age > 30 {
			t.Fatalf("variety age %d outside bucket [15,30]", a.Age)
		}
	}
}

func TestParserVarietyReproducible(t *testing.T) {
	p1 := NewParserWithVariety(7)
	p2 := NewParserWithVariety(7)
	for i := 0; i < 10; i++ {
		a1 := p1.Parse("an elderly person")
		a2 := p2.Parse("an elderly person")
		if a1.Age != a2.Age {
			t.Fatalf("same seed diverged: %d vs %d", a1.Age, a2.Age)
		}
	}
}

func TestOverridesTakePrecedence(t *testing.T) {
	age, height, weight := 33, 182, 90
	a := Parse("a young smiling woman")
	a = Overrides{Age: &age, HeightCM: &height, WeightKG: &weight}.Apply(a)

	if a.Age != 33 {
		t.Errorf("expected override age 33, got %d", a.Age)
	}
	if a.HeightCM != 182 {
		t.Errorf("expected override height 182, got %d", a.HeightCM)
	}
	if a.WeightKG != 90 {
		t.Errorf("expected override weight 90, got %d", a.WeightKG)
	}
}
