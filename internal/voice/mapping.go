package voice

import "github.com/tjhootman/audiobook-generator/domain/entities"

// ToneBand adjusts pitch and rate for texts whose categories match any
// of its labels. Reset bands zero the adjustments instead (factual
// content narrates flat).
type ToneBand struct {
	Labels     []string
	PitchDelta float64
	RateFactor float64
	Reset      bool
}

// Mapping holds the tunable constants that shape pitch and speaking
// rate from sentiment, categories and syntax complexity. The shape is
// fixed (monotonic, clamped, deterministic); the values are policy.
type Mapping struct {
	// Sentiment shaping: pitch moves PitchSensitivity semitones and rate
	// RateSensitivity/2 per unit of sentiment score.
	PitchSensitivity float64
	RateSensitivity  float64

	Bands []ToneBand

	// Syntax shaping thresholds.
	LongSentenceTokens  float64
	ShortSentenceTokens float64
	ComplexClauseRatio  float64
	LongSentenceRate    float64
	LongSentencePitch   float64
	ShortSentenceRate   float64
}

// DefaultMapping returns the shipped tuning.
func DefaultMapping() Mapping {
	return Mapping{
		PitchSensitivity: 4.0,
		RateSensitivity:  0.1,
		Bands: []ToneBand{
			{Labels: []string{"Science Fiction", "Fantasy"}, PitchDelta: -1.0, RateFactor: 0.95},
			{Labels: []string{"Romance"}, PitchDelta: 1.5, RateFactor: 1.03},
			{Labels: []string{"News", "Business & Industrial", "Education"}, Reset: true},
			{Labels: []string{"Poetry", "Literature"}, PitchDelta: -0.5, RateFactor: 0.90},
			{Labels: []string{"Mystery", "Thriller"}, PitchDelta: -0.8, RateFactor: 0.97},
		},
		LongSentenceTokens:  20,
		ShortSentenceTokens: 10,
		ComplexClauseRatio:  0.3,
		LongSentenceRate:    0.90,
		LongSentencePitch:   -0.5,
		ShortSentenceRate:   1.05,
	}
}

// Shape maps an analysis to a pitch offset and speaking rate, both
// clamped to the provider-supported ranges.
func (m Mapping) Shape(a entities.AnalysisResult) (pitch, rate float64) {
	pitch = 0
	rate = 1

	// More positive sentiment lifts pitch and quickens the pace; more
	// negative lowers and slows. Monotonic in the score.
	pitch += a.SentimentScore * m.PitchSensitivity
	rate += a.SentimentScore * (m.RateSensitivity / 2)

	for _, band := range m.Bands {
		if !matchesAny(a, band.Labels) {
			continue
		}
		if band.Reset {
			pitch = 0
			rate = 1
			continue
		}
		pitch += band.PitchDelta
		rate *= band.RateFactor
	}

	if a.Syntax.Sentences > 0 {
		clauseRatio := float64(a.Syntax.ComplexClauses) / float64(a.Syntax.Sentences)
		switch {
		case a.Syntax.AvgTokensPerSentence > m.LongSentenceTokens || clauseRatio > m.ComplexClauseRatio:
			rate *= m.LongSentenceRate
			pitch += m.LongSentencePitch
		case a.Syntax.AvgTokensPerSentence < m.ShortSentenceTokens:
			rate *= m.ShortSentenceRate
		}
	}

	return clamp(pitch, MinPitch, MaxPitch), clamp(rate, MinRate, MaxRate)
}

func (m Mapping) isZero() bool {
	return m.PitchSensitivity == 0 && m.RateSensitivity == 0 && m.Bands == nil
}

func matchesAny(a entities.AnalysisResult, labels []string) bool {
	for _, l := range labels {
		if a.HasCategory(l) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
