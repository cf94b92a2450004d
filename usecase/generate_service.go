package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/domain/repositories"
	"github.com/tjhootman/audiobook-generator/internal/textproc"
	"github.com/tjhootman/audiobook-generator/internal/voice"
)

const chunkDirName = "temp_audio_chunks"

// Combiner assembles synthesized chunk files into the final audiobook.
type Combiner interface {
	Combine(outPath string, chunks []entities.AudioChunk) error
	Cleanup(dir string)
}

// Options tunes a GenerateService.
type Options struct {
	OutputDir    string
	ChunkLimit   int
	SynthWorkers int
}

// GenerateService orchestrates the whole pipeline: download, clean,
// analyze, select a voice, synthesize chunks concurrently and combine
// them into one MP3.
type GenerateService struct {
	source      repositories.BookSource
	analyzer    repositories.TextAnalyzer
	catalog     repositories.VoiceCatalog
	synthesizer repositories.SpeechSynthesizer
	combiner    Combiner
	selector    voice.Selector
	options     Options
	logger      *zap.Logger
}

// NewGenerateService creates a new generation service.
func NewGenerateService(
	source repositories.BookSource,
	analyzer repositories.TextAnalyzer,
	catalog repositories.VoiceCatalog,
	synthesizer repositories.SpeechSynthesizer,
	combiner Combiner,
	options Options,
	logger *zap.Logger,
) *GenerateService {
	if options.ChunkLimit <= 0 {
		options.ChunkLimit = textproc.DefaultChunkLimit
	}
	if options.SynthWorkers <= 0 {
		options.SynthWorkers = 1
	}
	if options.OutputDir == "" {
		options.OutputDir = "output"
	}
	return &GenerateService{
		source:      source,
		analyzer:    analyzer,
		catalog:     catalog,
		synthesizer: synthesizer,
		combiner:    combiner,
		selector:    voice.Selector{},
		options:     options,
		logger:      logger,
	}
}

// Execute runs the pipeline for one book URL and returns the finished
// audiobook. genderPref overrides the inferred narrator gender when it
// is not GenderAuto.
func (s *GenerateService) Execute(ctx context.Context, url string, genderPref entities.Gender) (*entities.Audiobook, error) {
	raw, err := s.source.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	book := s.prepareBook(raw, url)
	s.logger.Info("Book prepared",
		zap.String("title", book.RawTitle),
		zap.String("author", book.Author),
		zap.Int("cleanedChars", len(book.CleanedText)))
	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("book failed validation: %w", err)
	}

	bookDir := filepath.Join(s.options.OutputDir, book.SanitizedTitle)
	if err := os.MkdirAll(bookDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating book directory: %w", err)
	}
	if err := s.writeTextArtifacts(bookDir, book); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, book.CleanedText)
	if err != nil {
		return nil, err
	}

	profile := s.selectVoice(ctx, *analysis, genderPref)
	s.logger.Info("Voice selected",
		zap.String("voice", profile.VoiceName),
		zap.String("tier", profile.Tier.String()),
		zap.Float64("pitch", profile.Pitch),
		zap.Float64("rate", profile.SpeakingRate))

	chunks := textproc.Chunk(book.CleanedText, s.options.ChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no synthesizable text after cleaning")
	}

	audioChunks, err := s.synthesizeAll(ctx, bookDir, chunks, profile)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(bookDir, book.SanitizedTitle+"_audiobook.mp3")
	if err := s.combiner.Combine(outPath, audioChunks); err != nil {
		return nil, err
	}
	s.combiner.Cleanup(filepath.Join(bookDir, chunkDirName))

	s.logger.Info("Audiobook generated",
		zap.String("path", outPath),
		zap.Int("chunks", len(audioChunks)))
	return &entities.Audiobook{Path: outPath, Chunks: audioChunks}, nil
}

func (s *GenerateService) prepareBook(raw, url string) *entities.Book {
	rawTitle, sanitized := textproc.ExtractTitle(raw)
	return &entities.Book{
		RawTitle:       rawTitle,
		SanitizedTitle: sanitized,
		Author:         textproc.ExtractAuthor(raw),
		SourceURL:      url,
		RawText:        raw,
		CleanedText:    textproc.Clean(raw, rawTitle),
	}
}

// writeTextArtifacts keeps the raw and cleaned texts next to the audio
// for inspection and reuse.
func (s *GenerateService) writeTextArtifacts(bookDir string, book *entities.Book) error {
	rawPath := filepath.Join(bookDir, book.SanitizedTitle+"_raw.txt")
	if err := os.WriteFile(rawPath, []byte(book.RawText), 0o644); err != nil {
		return fmt.Errorf("writing raw text: %w", err)
	}
	cleanedPath := filepath.Join(bookDir, book.SanitizedTitle+"_cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(book.CleanedText), 0o644); err != nil {
		return fmt.Errorf("writing cleaned text: %w", err)
	}
	return nil
}

// selectVoice never fails: an unreachable catalog degrades to the
// default narrator profile.
func (s *GenerateService) selectVoice(ctx context.Context, analysis entities.AnalysisResult, genderPref entities.Gender) entities.VoiceProfile {
	voices, err := s.catalog.Voices(ctx, voice.SearchCodes(analysis))
	if err != nil {
		s.logger.Warn("Voice catalog unavailable, using the default narrator", zap.Error(err))
		voices = nil
	}

	profile := s.selector.Select(analysis, genderPref, voices)
	if profile.Default {
		s.logger.Warn("No matching voice found, using the default narrator",
			zap.String("voice", profile.VoiceName))
	}
	return profile
}

func (s *GenerateService) synthesizeAll(ctx context.Context, bookDir string, chunks []entities.TextChunk, profile entities.VoiceProfile) ([]entities.AudioChunk, error) {
	chunkDir := filepath.Join(bookDir, chunkDirName)
	if err := os.MkdirAll(chunkDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating chunk directory: %w", err)
	}

	s.logger.Info("Synthesizing chunks",
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", s.options.SynthWorkers))

	results := make([]entities.AudioChunk, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.SynthWorkers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			outPath := filepath.Join(chunkDir, fmt.Sprintf("chunk_%04d.mp3", chunk.Index))
			audio, err := s.synthesizer.Synthesize(ctx, chunk, profile, outPath)
			if err != nil {
				return err
			}
			results[i] = audio
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
