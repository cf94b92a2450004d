// Package textproc prepares a downloaded book text for synthesis:
// boilerplate stripping, normalization, metadata extraction and
// chunking within the provider's request limit.
package textproc

import (
	"regexp"
	"strings"
)

var (
	startMarkerRe = regexp.MustCompile(`(?ims)^\*\*\* START OF THE PROJECT GUTENBERG EBOOK.*?\*\*\*\s*$`)
	endMarkerRe   = regexp.MustCompile(`(?ims)^\*\*\* END OF THE PROJECT GUTENBERG EBOOK.*?\*\*\*\s*$`)

	brokenHyphenRe = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	newlineRunRe   = regexp.MustCompile(`[ \t]*\n[\s]*`)
	multiSpaceRe   = regexp.MustCompile(` {2,}`)
)

// Clean strips Project Gutenberg boilerplate and normalizes the text for
// speech synthesis. It slices between the generic start/end markers when
// both are present, falling back to title-specific markers; with neither,
// the whole text is kept. Line endings are normalized, hyphenated words
// broken across lines are rejoined, single newlines become spaces and
// runs of blank lines become paragraph breaks.
func Clean(raw, rawTitle string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	if sliced, ok := sliceBetween(text, startMarkerRe, endMarkerRe); ok {
		text = sliced
	} else if rawTitle != "" {
		upper := regexp.QuoteMeta(strings.ToUpper(rawTitle))
		titleStart := regexp.MustCompile(`(?is)\*\*\* START OF THE PROJECT GUTENBERG EBOOK ` + upper + `.*?\n`)
		titleEnd := regexp.MustCompile(`(?is)\*\*\* END OF THE PROJECT GUTENBERG EBOOK ` + upper)
		if sliced, ok := sliceBetween(text, titleStart, titleEnd); ok {
			text = sliced
		}
	}

	text = brokenHyphenRe.ReplaceAllString(text, "${1}${2}")

	text = newlineRunRe.ReplaceAllStringFunc(text, func(run string) string {
		if strings.Count(run, "\n") > 1 {
			return "\n\n"
		}
		return " "
	})

	text = strings.ReplaceAll(text, "_", " ")
	text = multiSpaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func sliceBetween(text string, startRe, endRe *regexp.Regexp) (string, bool) {
	start := startRe.FindStringIndex(text)
	end := endRe.FindStringIndex(text)
	if start == nil || end == nil || end[0] <= start[1] {
		return "", false
	}
	return strings.TrimSpace(text[start[1]:end[0]]), true
}
