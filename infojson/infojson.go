// Package infojson reads the metadata blob yt-dlp writes with
// --write-info-json.
package infojson

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	UnknownTitle  = "Unknown title"
	UnknownAuthor = "Unknown author"
)

type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

type Info struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title"`
	Comments []Comment `json:"comments"`
}

type rawComment struct {
	Author *string `json:"author"`
	Text   string  `json:"text"`
	Txt    string  `json:"txt"`
}

type rawInfo struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Comments []rawComment `json:"comments"`
}

// Parse decodes an info JSON document. Comments with no text are skipped.
func Parse(data []byte) (*Info, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode info json")
	}

	info := &Info{
		ID:       raw.ID,
		Title:    strings.TrimSpace(raw.Title),
		Comments: make([]Comment, 0, len(raw.Comments)),
	}
	if info.Title == "" {
		info.Title = UnknownTitle
	}

	for _, c := range raw.Comments {
		text := c.Text
		if text == "" {
			text = c.Txt
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		author := UnknownAuthor
		if c.Author != nil {
			author = strings.TrimSpace(*c.Author)
		}

		info.Comments = append(info.Comments, Comment{Author: author, Text: text})
	}

	return info, nil
}

func ParseFile(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Parse(data)
}
