package transcript

import (
	"encoding/json"
	"strings"

	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

// Document is the JSON representation of a selected transcript.
type Document struct {
	VideoID   string    `json:"videoId"`
	Language  string    `json:"language"`
	Generated bool      `json:"generated"`
	Snippets  []Snippet `json:"snippets"`
}

// PlainText joins the trimmed, non-empty snippet texts with newlines.
func PlainText(snippets []Snippet) (string, error) {
	lines := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if t := strings.TrimSpace(s.Text); t != "" {
			lines = append(lines, t)
		}
	}
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// Render encodes sel in the requested format and returns the body with its
// content type.
func Render(id videoid.ID, sel *Selection, format Format) ([]byte, string, error) {
	if format == FormatJSON {
		snippets := sel.Snippets
		if snippets == nil {
			snippets = []Snippet{}
		}
		body, err := json.Marshal(Document{
			VideoID:   id.String(),
			Language:  sel.LanguageCode,
			Generated: sel.Generated,
			Snippets:  snippets,
		})
		if err != nil {
			return nil, "", err
		}
		return body, "application/json", nil
	}

	text, err := PlainText(sel.Snippets)
	if err != nil {
		return nil, "", err
	}
	return []byte(text), "text/plain; charset=utf-8", nil
}
