// Package audio assembles per-chunk MP3 files into one audiobook file.
// MP3 streams concatenate at the byte level, so no re-encoding happens
// here.
package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

// Combiner concatenates synthesized chunks in index order.
type Combiner struct {
	logger *zap.Logger
}

// NewCombiner creates a Combiner.
func NewCombiner(logger *zap.Logger) *Combiner {
	return &Combiner{logger: logger}
}

// Combine writes all chunk files to outPath in ascending index order.
// Every chunk file must exist before any output is produced; a missing
// or unreadable chunk surfaces as CombineError and leaves no partial
// file behind. The output is written to a temp file first and renamed
// into place.
func (c *Combiner) Combine(outPath string, chunks []entities.AudioChunk) error {
	if len(chunks) == 0 {
		return &entities.CombineError{ChunkIndex: -1, Err: fmt.Errorf("no chunks to combine")}
	}

	ordered := make([]entities.AudioChunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	for _, chunk := range ordered {
		if _, err := os.Stat(chunk.Path); err != nil {
			return &entities.CombineError{ChunkIndex: chunk.Index, Path: chunk.Path, Err: err}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".audiobook-*.mp3")
	if err != nil {
		return &entities.CombineError{ChunkIndex: -1, Path: outPath, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	for _, chunk := range ordered {
		if err := appendFile(tmp, chunk.Path); err != nil {
			tmp.Close()
			return &entities.CombineError{ChunkIndex: chunk.Index, Path: chunk.Path, Err: err}
		}
	}
	if err := tmp.Close(); err != nil {
		return &entities.CombineError{ChunkIndex: -1, Path: outPath, Err: err}
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return &entities.CombineError{ChunkIndex: -1, Path: outPath, Err: err}
	}

	c.logger.Info("Audiobook assembled",
		zap.String("path", outPath),
		zap.Int("chunks", len(ordered)))
	return nil
}

// Cleanup removes the temporary chunk directory. Call it only after a
// successful Combine; on failure the chunks stay on disk for resumption
// or inspection.
func (c *Combiner) Cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		c.logger.Warn("Could not remove temporary chunk directory",
			zap.String("dir", dir), zap.Error(err))
		return
	}
	c.logger.Info("Temporary chunks removed", zap.String("dir", dir))
}

func appendFile(dst io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("copying %s: %w", path, err)
	}
	return nil
}
