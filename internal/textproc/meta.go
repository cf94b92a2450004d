package textproc

import (
	"regexp"
	"strings"
)

const (
	DefaultTitle  = "unknown_book"
	DefaultAuthor = "unknown_author"

	// Gutenberg headers carry Title:/Author: lines near the top of the file.
	metadataScanLines = 20
)

var (
	titleLineRe  = regexp.MustCompile(`(?i)^Title:\s*(.*)`)
	authorLineRe = regexp.MustCompile(`(?i)^Author:\s*(.*)`)

	unsafePathCharsRe = regexp.MustCompile(`[\\/:*?"<>|,;]`)
	whitespaceRunRe   = regexp.MustCompile(`\s+`)
)

// ExtractTitle scans the head of the raw text for a Title: line and
// returns the raw title and a filesystem-safe form used for the output
// directory and file names.
func ExtractTitle(raw string) (rawTitle, sanitized string) {
	line := scanMetadataLine(raw, titleLineRe)
	if line == "" {
		return DefaultTitle, DefaultTitle
	}
	sanitized = SanitizeTitle(line)
	if sanitized == "" {
		sanitized = DefaultTitle
	}
	return line, sanitized
}

// ExtractAuthor scans the head of the raw text for an Author: line.
func ExtractAuthor(raw string) string {
	if line := scanMetadataLine(raw, authorLineRe); line != "" {
		return line
	}
	return DefaultAuthor
}

// SanitizeTitle makes a title safe for use as a directory or file name.
func SanitizeTitle(title string) string {
	s := unsafePathCharsRe.ReplaceAllString(title, "")
	s = whitespaceRunRe.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.Trim(s, "._")
}

func scanMetadataLine(raw string, re *regexp.Regexp) string {
	for i, line := range strings.SplitN(strings.ReplaceAll(raw, "\r\n", "\n"), "\n", metadataScanLines+1) {
		if i >= metadataScanLines {
			break
		}
		if m := re.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
