// Package transcript selects, fetches and renders video transcripts.
//
// The package owns the selection policy (manual, then generated, then any
// transcript in the requested languages) and the output formats. Talking to
// the video platform is delegated to a Provider.
package transcript

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

// Provider lists the transcripts available for a video.
type Provider interface {
	List(ctx context.Context, id videoid.ID) (Catalog, error)
}

// Catalog is the set of transcripts available for one video.
// Each Find method searches langs in order and fails with an error wrapping
// ErrNoTranscriptFound when nothing matches.
type Catalog interface {
	FindManual(langs []string) (Handle, error)
	FindGenerated(langs []string) (Handle, error)
	FindAny(langs []string) (Handle, error)
}

// Handle refers to a single transcript track that can be fetched.
type Handle interface {
	LanguageCode() string
	Language() string
	IsGenerated() bool
	Fetch(ctx context.Context, preserveFormatting bool) ([]Snippet, error)
}

// Snippet is one timed unit of caption text.
type Snippet struct {
	Text     string
	Start    float64
	Duration float64
	// Extra holds provider fields not modelled here. They are emitted
	// unchanged in JSON output.
	Extra map[string]any
}

// MarshalJSON writes Extra first so the modelled fields take precedence.
func (s Snippet) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		m[k] = v
	}
	m["text"] = s.Text
	m["start"] = s.Start
	m["duration"] = s.Duration
	return json.Marshal(m)
}

// UnmarshalJSON keeps unknown fields in Extra.
func (s *Snippet) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Snippet{}
	if v, ok := raw["text"].(string); ok {
		s.Text = v
	}
	if v, ok := raw["start"].(float64); ok {
		s.Start = v
	}
	if v, ok := raw["duration"].(float64); ok {
		s.Duration = v
	}
	delete(raw, "text")
	delete(raw, "start")
	delete(raw, "duration")
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// Selection is the transcript chosen for a single request.
type Selection struct {
	LanguageCode string
	Language     string
	Generated    bool
	Snippets     []Snippet
}

// Format is the output representation of a transcript.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat maps exactly "json" to FormatJSON; every other value is plain text.
func ParseFormat(s string) Format {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

// DefaultLanguages is used when a request names no language.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}

// ParseLanguages splits a comma-separated language list, trimming entries and
// dropping empty ones. Order and duplicates are preserved.
func ParseLanguages(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
