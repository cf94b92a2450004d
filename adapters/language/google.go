// Package language analyzes book text with the Google Cloud Natural
// Language API: sentiment (which also carries language detection),
// content classification and syntax metrics, plus a local regional
// dialect heuristic for English.
package language

import (
	"context"
	"fmt"
	"strings"

	languageapi "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	"go.uber.org/zap"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/domain/repositories"
	"github.com/tjhootman/audiobook-generator/internal/dialect"
	"github.com/tjhootman/audiobook-generator/internal/retry"
)

const (
	// defaultSampleBytes bounds the analysis sample. A representative
	// prefix is analyzed rather than the whole book; the provider caps
	// documents at 1 MB anyway.
	defaultSampleBytes = 100 * 1024

	// minAnalyzableChars mirrors the provider's behavior on very short
	// texts: skip analysis and fall back to neutral defaults.
	minAnalyzableChars = 50

	// minClassifyWords is the provider's floor for classification.
	minClassifyWords = 20
)

// Dependency labels that mark subordinate clauses; their count is the
// complexity signal.
var complexClauseLabels = map[string]bool{
	"acl":       true,
	"advcl":     true,
	"ccomp":     true,
	"csubj":     true,
	"xcomp":     true,
	"csubjpass": true,
	"auxpass":   true,
}

// Config holds configuration for the Analyzer adapter.
type Config struct {
	SampleBytes int // Optional: analysis sample size (default: 100 KiB)
}

// Analyzer implements TextAnalyzer on the Natural Language API.
type Analyzer struct {
	client      *languageapi.Client
	sampleBytes int
	retry       retry.Policy
	dialect     dialect.Detector
	logger      *zap.Logger

	// API call indirection so unit tests can stub the provider.
	sentiment func(ctx context.Context, req *languagepb.AnalyzeSentimentRequest) (*languagepb.AnalyzeSentimentResponse, error)
	classify  func(ctx context.Context, req *languagepb.ClassifyTextRequest) (*languagepb.ClassifyTextResponse, error)
	syntax    func(ctx context.Context, req *languagepb.AnalyzeSyntaxRequest) (*languagepb.AnalyzeSyntaxResponse, error)
}

var _ repositories.TextAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates an Analyzer backed by a real API client. Client
// construction fails when application default credentials are missing.
func NewAnalyzer(ctx context.Context, config Config, logger *zap.Logger) (*Analyzer, error) {
	client, err := languageapi.NewClient(ctx)
	if err != nil {
		return nil, &entities.ConfigError{Name: "google natural language client", Err: err}
	}

	a := newAnalyzer(config, logger)
	a.client = client
	a.sentiment = func(ctx context.Context, req *languagepb.AnalyzeSentimentRequest) (*languagepb.AnalyzeSentimentResponse, error) {
		return client.AnalyzeSentiment(ctx, req)
	}
	a.classify = func(ctx context.Context, req *languagepb.ClassifyTextRequest) (*languagepb.ClassifyTextResponse, error) {
		return client.ClassifyText(ctx, req)
	}
	a.syntax = func(ctx context.Context, req *languagepb.AnalyzeSyntaxRequest) (*languagepb.AnalyzeSyntaxResponse, error) {
		return client.AnalyzeSyntax(ctx, req)
	}
	return a, nil
}

func newAnalyzer(config Config, logger *zap.Logger) *Analyzer {
	sampleBytes := config.SampleBytes
	if sampleBytes <= 0 {
		sampleBytes = defaultSampleBytes
	}
	return &Analyzer{
		sampleBytes: sampleBytes,
		retry:       retry.Default(retry.TransientGRPC),
		dialect:     dialect.Detector{},
		logger:      logger,
	}
}

// Close releases the underlying API client.
func (a *Analyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// Analyze runs the full analysis over a representative sample of text.
// Sentiment is the load-bearing call: its failure aborts with
// AnalysisError. Classification and syntax degrade to empty results.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*entities.AnalysisResult, error) {
	sample := analysisSample(text, a.sampleBytes)

	if len(sample) < minAnalyzableChars {
		a.logger.Warn("Text too short for analysis, using neutral defaults",
			zap.Int("chars", len(sample)))
		return &entities.AnalysisResult{LanguageCode: "en"}, nil
	}

	doc := &languagepb.Document{
		Source: &languagepb.Document_Content{Content: sample},
		Type:   languagepb.Document_PLAIN_TEXT,
	}

	var sentimentResp *languagepb.AnalyzeSentimentResponse
	err := a.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		sentimentResp, opErr = a.sentiment(ctx, &languagepb.AnalyzeSentimentRequest{
			Document:     doc,
			EncodingType: languagepb.EncodingType_UTF8,
		})
		return opErr
	})
	if err != nil {
		return nil, &entities.AnalysisError{Err: fmt.Errorf("sentiment analysis: %w", err)}
	}
	if sentimentResp.GetDocumentSentiment() == nil {
		return nil, &entities.AnalysisError{Err: fmt.Errorf("sentiment analysis: empty document sentiment")}
	}

	result := &entities.AnalysisResult{
		LanguageCode:       normalizeLanguage(sentimentResp.GetLanguage()),
		SentimentScore:     float64(sentimentResp.GetDocumentSentiment().GetScore()),
		SentimentMagnitude: float64(sentimentResp.GetDocumentSentiment().GetMagnitude()),
	}

	a.logger.Info("Sentiment analyzed",
		zap.String("language", result.LanguageCode),
		zap.Float64("score", result.SentimentScore),
		zap.Float64("magnitude", result.SentimentMagnitude))

	result.Categories = a.classifyCategories(ctx, doc, sample)
	result.Syntax = a.syntaxMetrics(ctx, doc)

	if result.LanguageCode == "en" {
		result.RegionCode = a.dialect.Detect(sample)
		if result.RegionCode != "" {
			a.logger.Info("Regional English detected", zap.String("region", result.RegionCode))
		}
	}

	return result, nil
}

func (a *Analyzer) classifyCategories(ctx context.Context, doc *languagepb.Document, sample string) []string {
	if len(strings.Fields(sample)) < minClassifyWords {
		a.logger.Info("Text too short for classification, skipping")
		return nil
	}

	var resp *languagepb.ClassifyTextResponse
	err := a.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		resp, opErr = a.classify(ctx, &languagepb.ClassifyTextRequest{Document: doc})
		return opErr
	})
	if err != nil {
		a.logger.Warn("Could not classify text content", zap.Error(err))
		return nil
	}

	categories := make([]string, 0, len(resp.GetCategories()))
	for _, c := range resp.GetCategories() {
		categories = append(categories, c.GetName())
	}
	a.logger.Info("Content classified", zap.Strings("categories", categories))
	return categories
}

func (a *Analyzer) syntaxMetrics(ctx context.Context, doc *languagepb.Document) entities.SyntaxMetrics {
	var resp *languagepb.AnalyzeSyntaxResponse
	err := a.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		resp, opErr = a.syntax(ctx, &languagepb.AnalyzeSyntaxRequest{
			Document:     doc,
			EncodingType: languagepb.EncodingType_UTF8,
		})
		return opErr
	})
	if err != nil {
		a.logger.Warn("Could not analyze syntax complexity", zap.Error(err))
		return entities.SyntaxMetrics{}
	}

	metrics := entities.SyntaxMetrics{
		Sentences: len(resp.GetSentences()),
		Tokens:    len(resp.GetTokens()),
	}
	if metrics.Sentences > 0 {
		metrics.AvgTokensPerSentence = float64(metrics.Tokens) / float64(metrics.Sentences)
	}
	for _, token := range resp.GetTokens() {
		label := strings.ToLower(token.GetDependencyEdge().GetLabel().String())
		if complexClauseLabels[label] {
			metrics.ComplexClauses++
		}
	}

	a.logger.Info("Syntax analyzed",
		zap.Int("sentences", metrics.Sentences),
		zap.Float64("avgTokensPerSentence", metrics.AvgTokensPerSentence),
		zap.Int("complexClauses", metrics.ComplexClauses))
	return metrics
}

// normalizeLanguage maps an undetermined detection to English.
func normalizeLanguage(code string) string {
	if code == "" || code == "und" {
		return "en"
	}
	return code
}
