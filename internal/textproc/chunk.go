package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tjhootman/audiobook-generator/domain/entities"
)

// DefaultChunkLimit keeps each synthesis request safely under the
// provider's 5000-byte per-request bound.
const DefaultChunkLimit = 4800

// Sentence terminators optionally followed by closing quotes/brackets,
// then whitespace.
var sentenceEndRe = regexp.MustCompile(`[.!?]["')\]]*\s+`)

// Chunk splits cleaned text into ordered chunks of at most limit bytes.
// Whole paragraphs are packed together while they fit; a paragraph longer
// than the limit is split at sentence boundaries; a single sentence longer
// than the limit is hard-wrapped at the last space before the limit. The
// concatenation of all chunks reproduces the text modulo boundary
// whitespace.
func Chunk(text string, limit int) []entities.TextChunk {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}

	var parts []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para)+2 > limit {
			flush()
		}
		if len(para) > limit {
			flush()
			parts = append(parts, splitLongParagraph(para, limit)...)
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	chunks := make([]entities.TextChunk, len(parts))
	for i, p := range parts {
		chunks[i] = entities.TextChunk{Index: i, Text: p}
	}
	return chunks
}

// SplitSentences splits text into sentences on terminal punctuation.
// Trailing quotes and brackets stay attached to their sentence.
func SplitSentences(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[prev:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		prev = loc[1]
	}
	if rest := strings.TrimSpace(text[prev:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func splitLongParagraph(para string, limit int) []string {
	var parts []string
	var current strings.Builder

	for _, sentence := range SplitSentences(para) {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > limit {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if len(sentence) > limit {
			if current.Len() > 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			}
			parts = append(parts, hardWrap(sentence, limit)...)
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// hardWrap is the last resort for a sentence longer than the limit:
// break at the last space before the limit, or at a rune boundary when
// there is no space at all.
func hardWrap(s string, limit int) []string {
	var parts []string
	for len(s) > limit {
		cut := strings.LastIndexByte(s[:limit+1], ' ')
		if cut <= 0 {
			cut = limit
			for cut > 1 && !utf8.RuneStart(s[cut]) {
				cut--
			}
		}
		parts = append(parts, strings.TrimSpace(s[:cut]))
		s = strings.TrimSpace(s[cut:])
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
