// Package googletts wraps the Google Cloud Text-to-Speech API as both
// the voice catalog and the speech synthesizer.
package googletts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/domain/repositories"
	"github.com/tjhootman/audiobook-generator/internal/retry"
)

// Synthesizer implements VoiceCatalog and SpeechSynthesizer on the
// Text-to-Speech API.
type Synthesizer struct {
	client *texttospeech.Client
	retry  retry.Policy
	logger *zap.Logger

	// All published voices, fetched once and filtered per request.
	voicesOnce sync.Once
	voicesErr  error
	allVoices  []entities.Voice

	// API call indirection so unit tests can stub the provider.
	synth func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
	list  func(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error)
}

var (
	_ repositories.VoiceCatalog      = (*Synthesizer)(nil)
	_ repositories.SpeechSynthesizer = (*Synthesizer)(nil)
)

// NewSynthesizer creates a Synthesizer backed by a real API client.
func NewSynthesizer(ctx context.Context, logger *zap.Logger) (*Synthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, &entities.ConfigError{Name: "google text-to-speech client", Err: err}
	}

	s := newSynthesizer(logger)
	s.client = client
	s.synth = func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
		return client.SynthesizeSpeech(ctx, req)
	}
	s.list = func(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error) {
		return client.ListVoices(ctx, req)
	}
	return s, nil
}

func newSynthesizer(logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		retry:  retry.Default(retry.TransientGRPC),
		logger: logger,
	}
}

// Close releases the underlying API client.
func (s *Synthesizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Voices returns the published voices matching any of languageCodes, in
// the order given by the provider. The full catalog is fetched once per
// Synthesizer; subsequent calls filter the cached list.
func (s *Synthesizer) Voices(ctx context.Context, languageCodes []string) ([]entities.Voice, error) {
	s.voicesOnce.Do(func() {
		s.allVoices, s.voicesErr = s.fetchVoices(ctx)
	})
	if s.voicesErr != nil {
		return nil, s.voicesErr
	}

	var matched []entities.Voice
	for _, v := range s.allVoices {
		if supportsAny(v, languageCodes) {
			matched = append(matched, v)
		}
	}
	s.logger.Info("Voice catalog filtered",
		zap.Strings("languageCodes", languageCodes),
		zap.Int("matched", len(matched)))
	return matched, nil
}

func (s *Synthesizer) fetchVoices(ctx context.Context) ([]entities.Voice, error) {
	var resp *texttospeechpb.ListVoicesResponse
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		resp, opErr = s.list(ctx, &texttospeechpb.ListVoicesRequest{})
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	voices := make([]entities.Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, entities.Voice{
			Name:          v.GetName(),
			LanguageCodes: v.GetLanguageCodes(),
			Gender:        fromSsmlGender(v.GetSsmlGender()),
		})
	}
	s.logger.Info("Voice catalog fetched", zap.Int("voices", len(voices)))
	return voices, nil
}

// Synthesize renders one text chunk to an MP3 file at outPath. Transient
// provider failures are retried; exhaustion surfaces as SynthesisError
// carrying the chunk index.
func (s *Synthesizer) Synthesize(ctx context.Context, chunk entities.TextChunk, profile entities.VoiceProfile, outPath string) (entities.AudioChunk, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: profile.LanguageCode,
			Name:         profile.VoiceName,
			SsmlGender:   toSsmlGender(profile.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			Pitch:         profile.Pitch,
			SpeakingRate:  profile.SpeakingRate,
		},
	}

	var resp *texttospeechpb.SynthesizeSpeechResponse
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		resp, opErr = s.synth(ctx, req)
		return opErr
	})
	if err != nil {
		return entities.AudioChunk{}, &entities.SynthesisError{ChunkIndex: chunk.Index, Err: err}
	}

	if err := os.WriteFile(outPath, resp.GetAudioContent(), 0o644); err != nil {
		return entities.AudioChunk{}, &entities.SynthesisError{ChunkIndex: chunk.Index, Err: fmt.Errorf("writing audio file: %w", err)}
	}

	s.logger.Debug("Chunk synthesized",
		zap.Int("chunk", chunk.Index),
		zap.String("path", outPath),
		zap.Int("bytes", len(resp.GetAudioContent())))
	return entities.AudioChunk{Index: chunk.Index, Path: outPath, Bytes: len(resp.GetAudioContent())}, nil
}

func supportsAny(v entities.Voice, codes []string) bool {
	for _, have := range v.LanguageCodes {
		for _, want := range codes {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func toSsmlGender(g entities.Gender) texttospeechpb.SsmlVoiceGender {
	switch g {
	case entities.GenderMale:
		return texttospeechpb.SsmlVoiceGender_MALE
	case entities.GenderFemale:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	case entities.GenderNeutral:
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_SSML_VOICE_GENDER_UNSPECIFIED
	}
}

func fromSsmlGender(g texttospeechpb.SsmlVoiceGender) entities.Gender {
	switch g {
	case texttospeechpb.SsmlVoiceGender_MALE:
		return entities.GenderMale
	case texttospeechpb.SsmlVoiceGender_FEMALE:
		return entities.GenderFemale
	case texttospeechpb.SsmlVoiceGender_NEUTRAL:
		return entities.GenderNeutral
	default:
		return entities.GenderAuto
	}
}
