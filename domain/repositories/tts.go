package repositories

import (
	"context"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

// VoiceCatalog lists the synthetic voices available for a set of
// language codes.
type VoiceCatalog interface {
	Voices(ctx context.Context, languageCodes []string) ([]entities.Voice, error)
}

// SpeechSynthesizer converts one text chunk to audio and writes it to
// outPath. Implementations retry transient provider errors internally;
// a returned error means retries were exhausted.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, chunk entities.TextChunk, profile entities.VoiceProfile, outPath string) (entities.AudioChunk, error)
}
