package language

import "strings"

// analysisSample returns a prefix of text no longer than maxBytes,
// truncated at a sentence boundary so the sample stays well formed for
// the API. Text already within the limit is returned unchanged.
func analysisSample(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}

	prefix := text[:maxBytes]
	if cut := strings.LastIndexAny(prefix, ".!?"); cut > 0 {
		return prefix[:cut+1]
	}
	return prefix
}
