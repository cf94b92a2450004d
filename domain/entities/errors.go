package entities

import "fmt"

// The pipeline's failure taxonomy. Every one of these aborts the run;
// transient provider errors are retried below this level before being
// escalated into one of them.

// FetchError means the source text could not be acquired.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch: downloading %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AnalysisError means the language analysis service failed or returned
// malformed data. Voice selection depends on analysis, so this is fatal.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// SynthesisError means speech synthesis exhausted its retries for a chunk.
type SynthesisError struct {
	ChunkIndex int
	Err        error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis: chunk %d: %v", e.ChunkIndex, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// CombineError means a chunk artifact was missing or unreadable during
// concatenation of the final audiobook.
type CombineError struct {
	ChunkIndex int
	Path       string
	Err        error
}

func (e *CombineError) Error() string {
	return fmt.Sprintf("combine: chunk %d (%s): %v", e.ChunkIndex, e.Path, e.Err)
}

func (e *CombineError) Unwrap() error { return e.Err }

// ConfigError means required configuration or credentials are missing or
// invalid. Raised before any network call is made.
type ConfigError struct {
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
