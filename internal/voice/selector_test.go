package voice

import (
	"reflect"
	"testing"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

func testVoices() []entities.Voice {
	return []entities.Voice{
		{Name: "en-US-Standard-A", LanguageCodes: []string{"en-US"}, Gender: entities.GenderFemale},
		{Name: "en-US-Standard-B", LanguageCodes: []string{"en-US"}, Gender: entities.GenderMale},
		{Name: "en-US-Wavenet-A", LanguageCodes: []string{"en-US"}, Gender: entities.GenderFemale},
		{Name: "en-US-Wavenet-B", LanguageCodes: []string{"en-US"}, Gender: entities.GenderMale},
		{Name: "en-US-Neural2-C", LanguageCodes: []string{"en-US"}, Gender: entities.GenderFemale},
		{Name: "en-US-Neural2-D", LanguageCodes: []string{"en-US"}, Gender: entities.GenderMale},
	}
}

func TestSearchCodes(t *testing.T) {
	a := entities.AnalysisResult{LanguageCode: "en", RegionCode: "en-GB"}
	got := SearchCodes(a)
	want := []string{"en-GB", "en", "en-US", "en-AU", "en-IN"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchCodes = %v, want %v", got, want)
	}

	a = entities.AnalysisResult{LanguageCode: "fr-CA"}
	got = SearchCodes(a)
	want = []string{"fr-CA", "fr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchCodes = %v, want %v", got, want)
	}
}

func TestTierOf(t *testing.T) {
	cases := []struct {
		name string
		want entities.VoiceTier
	}{
		{"en-US-Chirp3-HD-Achernar", entities.TierChirp},
		{"en-US-Neural2-A", entities.TierNeural},
		{"en-US-Studio-O", entities.TierNeural},
		{"en-GB-Wavenet-C", entities.TierWavenet},
		{"en-US-Standard-F", entities.TierStandard},
	}
	for _, tc := range cases {
		if got := TierOf(tc.name); got != tc.want {
			t.Errorf("TierOf(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInferGenderUserPreferenceWins(t *testing.T) {
	a := entities.AnalysisResult{SentimentScore: 0.9, Categories: []string{"/Books/Romance"}}
	if got := InferGender(a, entities.GenderMale, DefaultGenderRules); got != entities.GenderMale {
		t.Errorf("expected explicit preference to win, got %v", got)
	}
}

func TestInferGenderRuleTable(t *testing.T) {
	cases := []struct {
		name string
		a    entities.AnalysisResult
		want entities.Gender
	}{
		{"romance beats sentiment", entities.AnalysisResult{SentimentScore: -0.9, Categories: []string{"/Books/Romance"}}, entities.GenderFemale},
		{"news reads neutral", entities.AnalysisResult{SentimentScore: 0.9, Categories: []string{"/News"}}, entities.GenderNeutral},
		{"strongly positive", entities.AnalysisResult{SentimentScore: 0.7}, entities.GenderFemale},
		{"strongly negative", entities.AnalysisResult{SentimentScore: -0.7}, entities.GenderMale},
		{"undecided defaults neutral", entities.AnalysisResult{SentimentScore: 0.1}, entities.GenderNeutral},
	}
	for _, tc := range cases {
		if got := InferGender(tc.a, entities.GenderAuto, DefaultGenderRules); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSelectPrefersHighestTierMatchingGender(t *testing.T) {
	a := entities.AnalysisResult{LanguageCode: "en", SentimentScore: -0.7}

	p := Selector{}.Select(a, entities.GenderAuto, testVoices())
	if p.VoiceName != "en-US-Neural2-D" {
		t.Errorf("expected male Neural2 voice, got %q", p.VoiceName)
	}
	if p.Tier != entities.TierNeural {
		t.Errorf("expected neural tier, got %v", p.Tier)
	}
	if p.Default {
		t.Error("did not expect the default-voice fallback")
	}
}

func TestSelectFallsBackDownTheLadder(t *testing.T) {
	voices := []entities.Voice{
		{Name: "en-GB-Standard-A", LanguageCodes: []string{"en-GB"}, Gender: entities.GenderFemale},
		{Name: "en-GB-Wavenet-B", LanguageCodes: []string{"en-GB"}, Gender: entities.GenderFemale},
	}
	a := entities.AnalysisResult{LanguageCode: "en", SentimentScore: 0.8}

	p := Selector{}.Select(a, entities.GenderAuto, voices)
	if p.VoiceName != "en-GB-Wavenet-B" {
		t.Errorf("expected wavenet over standard, got %q", p.VoiceName)
	}
}

func TestSelectGenderMissFallsBackToAny(t *testing.T) {
	voices := []entities.Voice{
		{Name: "en-US-Wavenet-A", LanguageCodes: []string{"en-US"}, Gender: entities.GenderFemale},
	}
	a := entities.AnalysisResult{LanguageCode: "en", SentimentScore: -0.9}

	p := Selector{}.Select(a, entities.GenderAuto, voices)
	if p.VoiceName != "en-US-Wavenet-A" {
		t.Errorf("expected the only voice despite gender miss, got %q", p.VoiceName)
	}
	if p.Gender != entities.GenderFemale {
		t.Errorf("profile gender should be the chosen voice's, got %v", p.Gender)
	}
}

func TestSelectNoVoicesUsesDefaultProfile(t *testing.T) {
	a := entities.AnalysisResult{LanguageCode: "xx"}

	p := Selector{}.Select(a, entities.GenderAuto, nil)
	if !p.Default {
		t.Fatal("expected the default-voice signal")
	}
	if p.VoiceName != DefaultVoiceName {
		t.Errorf("expected %q, got %q", DefaultVoiceName, p.VoiceName)
	}
	if p.Pitch != 0 || p.SpeakingRate != 1 {
		t.Errorf("expected flat parameters, got pitch %v rate %v", p.Pitch, p.SpeakingRate)
	}
}

func TestSelectDeterministic(t *testing.T) {
	a := entities.AnalysisResult{
		LanguageCode:   "en",
		SentimentScore: -0.8,
		Categories:     []string{"/Books & Literature/Fiction"},
		Syntax:         entities.SyntaxMetrics{Sentences: 100, Tokens: 1500, AvgTokensPerSentence: 15, ComplexClauses: 10},
	}

	first := Selector{}.Select(a, entities.GenderAuto, testVoices())
	for i := 0; i < 10; i++ {
		if got := (Selector{}).Select(a, entities.GenderAuto, testVoices()); got != first {
			t.Fatalf("selection not deterministic: %+v vs %+v", got, first)
		}
	}
}

// Fiction at sentiment -0.8 with automatic gender must reproduce the
// documented mapping: negative polarity narrates male, pitch drops
// monotonically with the score.
func TestSelectNegativeFictionScenario(t *testing.T) {
	a := entities.AnalysisResult{
		LanguageCode:   "en",
		SentimentScore: -0.8,
		Categories:     []string{"/Books & Literature/Fiction"},
	}

	p := Selector{}.Select(a, entities.GenderAuto, testVoices())
	if p.VoiceName != "en-US-Neural2-D" {
		t.Errorf("expected the male Neural2 voice, got %q", p.VoiceName)
	}
	if p.Pitch >= 0 {
		t.Errorf("expected negative pitch offset, got %v", p.Pitch)
	}
	// Sentiment shaping plus the literature band: -0.8*4.0 - 0.5.
	wantPitch := -0.8*4.0 - 0.5
	if p.Pitch != wantPitch {
		t.Errorf("expected pitch %v, got %v", wantPitch, p.Pitch)
	}
	if p.SpeakingRate >= 1 {
		t.Errorf("expected rate below 1, got %v", p.SpeakingRate)
	}
}

func TestShapeClampsExtremes(t *testing.T) {
	m := DefaultMapping()
	m.PitchSensitivity = 100 // force the clamp

	for _, score := range []float64{-1, 1} {
		a := entities.AnalysisResult{SentimentScore: score}
		pitch, rate := m.Shape(a)
		if pitch < MinPitch || pitch > MaxPitch {
			t.Errorf("pitch %v out of range for score %v", pitch, score)
		}
		if rate < MinRate || rate > MaxRate {
			t.Errorf("rate %v out of range for score %v", rate, score)
		}
	}
}

func TestShapeSentimentMonotonic(t *testing.T) {
	m := DefaultMapping()
	prev := -100.0
	for _, score := range []float64{-1, -0.5, 0, 0.5, 1} {
		pitch, _ := m.Shape(entities.AnalysisResult{SentimentScore: score})
		if pitch < prev {
			t.Fatalf("pitch not monotonic in sentiment at score %v", score)
		}
		prev = pitch
	}
}

func TestShapeFactualCategoriesReset(t *testing.T) {
	m := DefaultMapping()
	a := entities.AnalysisResult{SentimentScore: 0.9, Categories: []string{"/News"}}

	pitch, rate := m.Shape(a)
	if pitch != 0 || rate != 1 {
		t.Errorf("expected flat narration for news, got pitch %v rate %v", pitch, rate)
	}
}

func TestShapeComplexSyntaxSlowsDown(t *testing.T) {
	m := DefaultMapping()
	simple := entities.AnalysisResult{Syntax: entities.SyntaxMetrics{Sentences: 10, AvgTokensPerSentence: 8}}
	complexText := entities.AnalysisResult{Syntax: entities.SyntaxMetrics{Sentences: 10, AvgTokensPerSentence: 28, ComplexClauses: 6}}

	_, simpleRate := m.Shape(simple)
	_, complexRate := m.Shape(complexText)
	if complexRate >= simpleRate {
		t.Errorf("expected complex syntax to slow the rate: simple %v, complex %v", simpleRate, complexRate)
	}
}

func TestSelectChirpAndStudioForceFlatParameters(t *testing.T) {
	voices := []entities.Voice{
		{Name: "en-US-Chirp3-HD-Achernar", LanguageCodes: []string{"en-US"}, Gender: entities.GenderFemale},
	}
	a := entities.AnalysisResult{LanguageCode: "en", SentimentScore: 0.9}

	p := Selector{}.Select(a, entities.GenderAuto, voices)
	if p.Tier != entities.TierChirp {
		t.Fatalf("expected chirp tier, got %v", p.Tier)
	}
	if p.Pitch != 0 || p.SpeakingRate != 1 {
		t.Errorf("expected flat parameters on a chirp voice, got pitch %v rate %v", p.Pitch, p.SpeakingRate)
	}
}
