package entities

import (
	"errors"
	"strings"
)

// Book represents one source text as it moves through the pipeline.
// It is populated at acquisition time and never mutated after cleaning.
type Book struct {
	RawTitle       string `json:"raw_title"`
	SanitizedTitle string `json:"sanitized_title"`
	Author         string `json:"author"`
	SourceURL      string `json:"source_url"`
	RawText        string `json:"-"`
	CleanedText    string `json:"-"`
}

// SyntaxMetrics summarizes the syntax analysis of a text.
type SyntaxMetrics struct {
	Sentences            int     `json:"sentences"`
	Tokens               int     `json:"tokens"`
	AvgTokensPerSentence float64 `json:"avg_tokens_per_sentence"`
	ComplexClauses       int     `json:"complex_clauses"`
}

// AnalysisResult is the structured output of the language analysis stage.
// Produced once per book and read-only thereafter.
type AnalysisResult struct {
	LanguageCode       string        `json:"language_code"`
	RegionCode         string        `json:"region_code,omitempty"`
	SentimentScore     float64       `json:"sentiment_score"`
	SentimentMagnitude float64       `json:"sentiment_magnitude"`
	Categories         []string      `json:"categories,omitempty"`
	Syntax             SyntaxMetrics `json:"syntax"`
}

// HasCategory reports whether any category label contains the given substring.
func (a AnalysisResult) HasCategory(substr string) bool {
	for _, c := range a.Categories {
		if strings.Contains(strings.ToLower(c), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// TextChunk is a bounded span of cleaned text synthesized as one request.
// Index determines the concatenation order of the resulting audio.
type TextChunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// AudioChunk records the synthesized audio file for one text chunk.
type AudioChunk struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Audiobook is the final artifact of a run.
type Audiobook struct {
	Path   string       `json:"path"`
	Chunks []AudioChunk `json:"chunks"`
}

func (b *Book) Validate() error {
	if b.SanitizedTitle == "" {
		return errors.New("sanitized title is required")
	}
	if b.CleanedText == "" {
		return errors.New("cleaned text is required")
	}
	return nil
}
