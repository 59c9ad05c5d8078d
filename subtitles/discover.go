package subtitles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultExt is the subtitle format requested from the extractor.
const DefaultExt = "srt"

// Discover loads every <videoID>.<lang>.<ext> file in dir. The result is
// sorted by tag, then filename, so fallbacks in Select are reproducible.
// A missing directory yields no candidates.
func Discover(dir, videoID, ext string) ([]Candidate, error) {
	if ext == "" {
		ext = DefaultExt
	}
	ext = strings.TrimPrefix(ext, ".")

	pattern := filepath.Join(dir, globEscape(videoID)+".*."+globEscape(ext))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob %s", pattern)
	}

	candidates := make([]Candidate, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}
		if info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}

		name := filepath.Base(path)
		candidates = append(candidates, Candidate{
			Language: LanguageFromFilename(name),
			Filename: name,
			Contents: string(data),
		})
	}

	SortCandidates(candidates)
	return candidates, nil
}

// SortCandidates orders candidates by tag, then filename.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := candidates[i].Tag(), candidates[j].Tag()
		if ti != tj {
			return ti < tj
		}
		return candidates[i].Filename < candidates[j].Filename
	})
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
