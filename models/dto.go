package models

import (
	"encoding/json"

	"github.com/nijaru/yt-transcript/subtitles"
)

// CandidateInput is one subtitle track supplied by the caller. Language may
// be omitted when Filename follows the <id>.<lang>.<ext> convention.
type CandidateInput struct {
	Language string `json:"language,omitempty" validate:"omitempty,max=35"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=255"`
	Contents string `json:"contents"`
}

// TranscriptRequest represents the incoming request for a transcript.
type TranscriptRequest struct {
	URL        string           `json:"url,omitempty" validate:"omitempty,url"`
	VideoID    string           `json:"video_id,omitempty" validate:"omitempty,max=64"`
	Language   string           `json:"language,omitempty" validate:"omitempty,max=35"`
	Priority   []string         `json:"priority,omitempty" validate:"omitempty,max=32,dive,required,max=35"`
	Candidates []CandidateInput `json:"candidates" validate:"dive"`
	InfoJSON   json.RawMessage  `json:"info_json,omitempty"`
}

// SubtitleCandidates converts the request's tracks into selector input,
// preserving order.
func (r *TranscriptRequest) SubtitleCandidates() []subtitles.Candidate {
	out := make([]subtitles.Candidate, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		out = append(out, subtitles.Candidate{
			Language: c.Language,
			Filename: c.Filename,
			Contents: c.Contents,
		})
	}
	return out
}

// TranscriptResponse represents the API response
type TranscriptResponse struct {
	ID                string    `json:"id"`
	VideoID           string    `json:"video_id,omitempty"`
	URL               string    `json:"url,omitempty"`
	Title             string    `json:"title,omitempty"`
	RequestedLanguage string    `json:"requested_language"`
	Language          string    `json:"language,omitempty"`
	Fallback          bool      `json:"fallback"`
	Selected          bool      `json:"selected"`
	Text              string    `json:"text"`
	Comments          []Comment `json:"comments"`
	CommentCount      int       `json:"comment_count"`
}

// NewTranscriptResponse creates a response from a transcript model
func NewTranscriptResponse(t *Transcript) *TranscriptResponse {
	comments := t.Comments
	if comments == nil {
		comments = []Comment{}
	}
	return &TranscriptResponse{
		ID:                t.ID,
		VideoID:           t.VideoID,
		URL:               t.URL,
		Title:             t.Title,
		RequestedLanguage: t.RequestedLanguage,
		Language:          t.Language,
		Fallback:          t.Fallback,
		Selected:          t.Selected,
		Text:              t.Text,
		Comments:          comments,
		CommentCount:      len(comments),
	}
}

// NormalizeResponse is returned by the raw normalization endpoint.
type NormalizeResponse struct {
	Text  string `json:"text"`
	Lines int    `json:"lines"`
}
