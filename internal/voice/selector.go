// Package voice derives a voice and speech parameters from a text
// analysis. Selection is pure and deterministic: the same analysis and
// preference always produce the same profile.
package voice

import (
	"sort"
	"strings"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

// Provider-supported parameter ranges.
const (
	MinPitch = -20.0
	MaxPitch = 20.0
	MinRate  = 0.25
	MaxRate  = 4.0
)

// DefaultVoiceName is the hardcoded fallback when no voice matches the
// detected language at all.
const DefaultVoiceName = "en-US-Wavenet-B"

// genericToRegional expands a bare language code into the regional
// variants voices are registered under.
var genericToRegional = map[string][]string{
	"en": {"en-US", "en-GB", "en-AU", "en-IN"},
	"fr": {"fr-FR", "fr-CA"},
	"de": {"de-DE"},
	"es": {"es-ES", "es-US", "es-MX"},
	"zh": {"zh-CN", "zh-TW", "zh-HK"},
}

// SearchCodes returns the language codes to query the voice catalog
// with, most specific first: the detected regional variant, the generic
// code, then its common regional expansions.
func SearchCodes(a entities.AnalysisResult) []string {
	var codes []string
	seen := map[string]bool{}
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}

	add(a.RegionCode)
	add(a.LanguageCode)
	for _, c := range genericToRegional[a.LanguageCode] {
		add(c)
	}
	if len(a.LanguageCode) == 5 {
		add(a.LanguageCode[:2])
	}
	return codes
}

// TierOf classifies a provider voice name into a quality tier.
func TierOf(name string) entities.VoiceTier {
	switch {
	case strings.Contains(name, "Chirp"):
		return entities.TierChirp
	case strings.Contains(name, "Neural2"), strings.Contains(name, "Studio"):
		return entities.TierNeural
	case strings.Contains(name, "Wavenet"):
		return entities.TierWavenet
	default:
		return entities.TierStandard
	}
}

// GenderRule maps an analysis condition to a narrator gender. Rules are
// evaluated in order; the first match wins.
type GenderRule struct {
	Name    string
	Applies func(a entities.AnalysisResult) bool
	Gender  entities.Gender
}

// DefaultGenderRules is the documented inference heuristic: categories
// outrank sentiment polarity, and anything undecided narrates neutral.
var DefaultGenderRules = []GenderRule{
	{
		Name:    "romance reads female",
		Applies: func(a entities.AnalysisResult) bool { return a.HasCategory("Romance") },
		Gender:  entities.GenderFemale,
	},
	{
		Name: "factual reads neutral",
		Applies: func(a entities.AnalysisResult) bool {
			return a.HasCategory("News") || a.HasCategory("Business & Industrial") || a.HasCategory("Science")
		},
		Gender: entities.GenderNeutral,
	},
	{
		Name:    "strongly positive reads female",
		Applies: func(a entities.AnalysisResult) bool { return a.SentimentScore > 0.5 },
		Gender:  entities.GenderFemale,
	},
	{
		Name:    "strongly negative reads male",
		Applies: func(a entities.AnalysisResult) bool { return a.SentimentScore < -0.5 },
		Gender:  entities.GenderMale,
	},
}

// InferGender resolves the narrator gender: an explicit preference wins,
// otherwise the rule table decides, defaulting to neutral.
func InferGender(a entities.AnalysisResult, pref entities.Gender, rules []GenderRule) entities.Gender {
	if pref != entities.GenderAuto {
		return pref
	}
	for _, r := range rules {
		if r.Applies(a) {
			return r.Gender
		}
	}
	return entities.GenderNeutral
}

// Selector turns an analysis, a preference and the available voices into
// a VoiceProfile. The zero value uses the default rules and mapping.
type Selector struct {
	Rules   []GenderRule
	Mapping Mapping
}

// Select picks the best available voice and shapes pitch and rate from
// the analysis. With no candidate voices at all it returns the default
// profile with Default set (the DefaultVoiceUsed signal).
func (s Selector) Select(a entities.AnalysisResult, pref entities.Gender, voices []entities.Voice) entities.VoiceProfile {
	rules := s.Rules
	if rules == nil {
		rules = DefaultGenderRules
	}
	mapping := s.Mapping
	if mapping.isZero() {
		mapping = DefaultMapping()
	}

	if len(voices) == 0 {
		return entities.VoiceProfile{
			VoiceName:    DefaultVoiceName,
			LanguageCode: "en-US",
			Gender:       entities.GenderNeutral,
			Tier:         entities.TierWavenet,
			Pitch:        0,
			SpeakingRate: 1,
			Default:      true,
		}
	}

	gender := InferGender(a, pref, rules)
	chosen := pickVoice(voices, gender)

	pitch, rate := mapping.Shape(a)

	tier := TierOf(chosen.Name)
	if tier == entities.TierChirp || strings.Contains(chosen.Name, "Studio") {
		// Premium voices do not accept pitch or rate adjustments.
		pitch, rate = 0, 1
	}

	lang := ""
	if len(chosen.LanguageCodes) > 0 {
		lang = chosen.LanguageCodes[0]
	}

	return entities.VoiceProfile{
		VoiceName:    chosen.Name,
		LanguageCode: lang,
		Gender:       chosen.Gender,
		Tier:         tier,
		Pitch:        pitch,
		SpeakingRate: rate,
	}
}

// pickVoice walks the tier ladder from best to worst, preferring an
// exact gender match, then a neutral voice, then anything from the
// highest populated tier. Candidates within a tier are ordered by name
// so the outcome is reproducible.
func pickVoice(voices []entities.Voice, gender entities.Gender) entities.Voice {
	byTier := map[entities.VoiceTier][]entities.Voice{}
	for _, v := range voices {
		t := TierOf(v.Name)
		byTier[t] = append(byTier[t], v)
	}
	ladder := []entities.VoiceTier{entities.TierChirp, entities.TierNeural, entities.TierWavenet, entities.TierStandard}
	for _, tier := range ladder {
		sort.Slice(byTier[tier], func(i, j int) bool {
			return byTier[tier][i].Name < byTier[tier][j].Name
		})
	}

	for _, tier := range ladder {
		for _, v := range byTier[tier] {
			if v.Gender == gender {
				return v
			}
		}
	}
	for _, tier := range ladder {
		for _, v := range byTier[tier] {
			if v.Gender == entities.GenderNeutral {
				return v
			}
		}
	}
	for _, tier := range ladder {
		if len(byTier[tier]) > 0 {
			return byTier[tier][0]
		}
	}
	return voices[0]
}
