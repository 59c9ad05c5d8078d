// Package subtitles turns SRT subtitle tracks into plain text and picks which
// track to use when several languages are available.
package subtitles

import (
	"strings"
)

const timestampMarker = "-->"

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize strips sequence counters, timestamp lines and blank lines from an
// SRT document and returns the remaining text lines joined by "\n".
//
// A cue whose text is only digits cannot be told apart from a sequence
// counter and is dropped as well.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(lineBreaks.Replace(raw), "\n")
	kept := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case isSequenceNumber(trimmed):
			continue
		case strings.Contains(line, timestampMarker):
			continue
		}
		kept = append(kept, trimmed)
	}

	return strings.Join(kept, "\n")
}

func isSequenceNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
