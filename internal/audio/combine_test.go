package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

func writeChunk(t *testing.T, dir string, index int, content string) entities.AudioChunk {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("chunk_%04d.mp3", index))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return entities.AudioChunk{Index: index, Path: path, Bytes: len(content)}
}

func TestCombineConcatenatesInIndexOrder(t *testing.T) {
	dir := t.TempDir()
	// Deliberately out of order.
	chunks := []entities.AudioChunk{
		writeChunk(t, dir, 2, "CCC"),
		writeChunk(t, dir, 0, "AAA"),
		writeChunk(t, dir, 1, "BBB"),
	}
	outPath := filepath.Join(dir, "book.mp3")

	c := NewCombiner(zaptest.NewLogger(t))
	if err := c.Combine(outPath, chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "AAABBBCCC" {
		t.Errorf("combined content = %q, want AAABBBCCC", data)
	}
}

func TestCombineMissingChunkProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	chunks := []entities.AudioChunk{
		writeChunk(t, dir, 0, "AAA"),
		{Index: 1, Path: filepath.Join(dir, "missing.mp3")},
		writeChunk(t, dir, 2, "CCC"),
	}
	outPath := filepath.Join(dir, "book.mp3")

	c := NewCombiner(zaptest.NewLogger(t))
	err := c.Combine(outPath, chunks)

	var combineErr *entities.CombineError
	if !errors.As(err, &combineErr) {
		t.Fatalf("expected CombineError, got %v", err)
	}
	if combineErr.ChunkIndex != 1 {
		t.Errorf("chunk index = %d, want 1", combineErr.ChunkIndex)
	}
	if _, err := os.Stat(outPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no output file may exist after a failed combine, stat err = %v", err)
	}
	// Surviving chunks stay on disk for inspection.
	if _, err := os.Stat(chunks[0].Path); err != nil {
		t.Errorf("existing chunks must be untouched: %v", err)
	}
}

func TestCombineNoChunks(t *testing.T) {
	c := NewCombiner(zaptest.NewLogger(t))
	err := c.Combine(filepath.Join(t.TempDir(), "book.mp3"), nil)

	var combineErr *entities.CombineError
	if !errors.As(err, &combineErr) {
		t.Fatalf("expected CombineError, got %v", err)
	}
}

func TestCombineLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	chunks := []entities.AudioChunk{writeChunk(t, dir, 0, "AAA")}
	outPath := filepath.Join(dir, "book.mp3")

	c := NewCombiner(zaptest.NewLogger(t))
	if err := c.Combine(outPath, chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "book.mp3" && e.Name() != filepath.Base(chunks[0].Path) {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

func TestCleanupRemovesChunkDirectory(t *testing.T) {
	dir := t.TempDir()
	chunkDir := filepath.Join(dir, "temp_audio_chunks")
	if err := os.MkdirAll(chunkDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeChunk(t, chunkDir, 0, "AAA")

	c := NewCombiner(zaptest.NewLogger(t))
	c.Cleanup(chunkDir)

	if _, err := os.Stat(chunkDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("chunk directory should be gone, stat err = %v", err)
	}
}
