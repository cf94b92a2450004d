package entities

import (
	"fmt"
	"strings"
)

// Gender is the narrator gender preference or the gender of a voice.
type Gender int

const (
	GenderAuto Gender = iota
	GenderMale
	GenderFemale
	GenderNeutral
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderNeutral:
		return "neutral"
	default:
		return "auto"
	}
}

// ParseGender parses a user-supplied gender preference token.
// The empty string and "auto" both select automatic inference.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return GenderAuto, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "neutral":
		return GenderNeutral, nil
	default:
		return GenderAuto, fmt.Errorf("unknown gender preference %q", s)
	}
}

// VoiceTier is a provider quality class. Higher values are preferred.
type VoiceTier int

const (
	TierStandard VoiceTier = iota
	TierWavenet
	TierNeural
	TierChirp
)

func (t VoiceTier) String() string {
	switch t {
	case TierChirp:
		return "chirp"
	case TierNeural:
		return "neural"
	case TierWavenet:
		return "wavenet"
	default:
		return "standard"
	}
}

// Voice is one synthetic voice offered by the speech provider.
type Voice struct {
	Name          string   `json:"name"`
	LanguageCodes []string `json:"language_codes"`
	Gender        Gender   `json:"gender"`
}

// VoiceProfile is the selected voice plus speech parameters for a book.
// Derived once from an AnalysisResult and an optional user preference;
// immutable for the rest of the run.
type VoiceProfile struct {
	VoiceName    string    `json:"voice_name"`
	LanguageCode string    `json:"language_code"`
	Gender       Gender    `json:"gender"`
	Tier         VoiceTier `json:"tier"`
	Pitch        float64   `json:"pitch"`
	SpeakingRate float64   `json:"speaking_rate"`

	// Default is set when no voice matched the language at all and the
	// hardcoded fallback profile was used. Non-fatal.
	Default bool `json:"default,omitempty"`
}
