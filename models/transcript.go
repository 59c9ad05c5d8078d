package models

import (
	"time"

	"github.com/nijaru/yt-transcript/infojson"
)

type Comment = infojson.Comment

// Transcript is the recorded outcome of one selection and normalization.
type Transcript struct {
	ID                string    `json:"id"`
	VideoID           string    `json:"video_id,omitempty"`
	URL               string    `json:"url,omitempty"`
	Title             string    `json:"title,omitempty"`
	RequestedLanguage string    `json:"requested_language"`
	Language          string    `json:"language,omitempty"`
	Fallback          bool      `json:"fallback"`
	Selected          bool      `json:"selected"`
	Text              string    `json:"text"`
	Comments          []Comment `json:"comments,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasText reports whether a track was selected and produced any text.
func (t *Transcript) HasText() bool { return t.Selected && t.Text != "" }

func (t *Transcript) HasComments() bool { return len(t.Comments) > 0 }
