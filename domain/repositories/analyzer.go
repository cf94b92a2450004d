package repositories

import (
	"context"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

// TextAnalyzer abstracts the natural-language analysis provider.
// Analyze inspects a cleaned text and returns language, sentiment,
// categories, syntax metrics and, for English, a regional variant.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (*entities.AnalysisResult, error)
}
