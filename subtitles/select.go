package subtitles

import (
	"path/filepath"
	"strings"
)

const (
	// AutoLanguage asks Select to pick by priority instead of an exact tag.
	AutoLanguage = "auto"

	// UnknownLanguage is reported when an auto-mode fallback has no tag.
	UnknownLanguage = "unknown"
)

// Candidate is one discovered subtitle track.
type Candidate struct {
	Language string `json:"language,omitempty"`
	Filename string `json:"filename,omitempty"`
	Contents string `json:"contents"`
}

// Tag returns the candidate's language, falling back to the tag encoded in
// its filename.
func (c Candidate) Tag() string {
	if c.Language != "" {
		return c.Language
	}
	return LanguageFromFilename(c.Filename)
}

// Request describes which language the caller wants. Priority is only
// consulted when Language is AutoLanguage.
type Request struct {
	Language string
	Priority []string
}

func (r Request) IsAuto() bool {
	return strings.EqualFold(strings.TrimSpace(r.Language), AutoLanguage)
}

// Selection is the chosen track. Language is what was actually picked and
// may differ from the request.
type Selection struct {
	Language string
	Contents string
	Fallback bool
}

// Select picks exactly one candidate for req. The boolean is false only when
// candidates is empty. When no tag matches, the first candidate in slice order
// is used, so callers must pass a deterministically ordered slice.
func Select(req Request, candidates []Candidate) (Selection, bool) {
	if len(candidates) == 0 {
		return Selection{}, false
	}

	if req.IsAuto() {
		return selectAuto(req.Priority, candidates), true
	}
	return selectSpecific(req.Language, candidates), true
}

func selectSpecific(lang string, candidates []Candidate) Selection {
	for _, c := range candidates {
		if c.Tag() == lang {
			return Selection{Language: lang, Contents: c.Contents}
		}
	}

	first := candidates[0]
	return Selection{
		Language: first.Tag(),
		Contents: first.Contents,
		Fallback: true,
	}
}

func selectAuto(priority []string, candidates []Candidate) Selection {
	for _, want := range priority {
		for _, c := range candidates {
			if c.Tag() == want {
				return Selection{Language: want, Contents: c.Contents}
			}
		}
	}

	first := candidates[0]
	tag := first.Tag()
	if tag == "" {
		tag = UnknownLanguage
	}
	return Selection{
		Language: tag,
		Contents: first.Contents,
		Fallback: true,
	}
}

// LanguageFromFilename extracts <lang> from names shaped like
// <id>.<lang>.<ext>. It returns "" when the name has fewer than three
// dot-separated parts.
func LanguageFromFilename(name string) string {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) > 2 {
		return parts[len(parts)-2]
	}
	return ""
}
