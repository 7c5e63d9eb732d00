package mcptool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

type track struct {
	code      string
	generated bool
	texts     []string
}

func (t track) LanguageCode() string { return t.code }
func (t track) Language() string     { return t.code }
func (t track) IsGenerated() bool    { return t.generated }

func (t track) Fetch(context.Context, bool) ([]transcript.Snippet, error) {
	out := make([]transcript.Snippet, len(t.texts))
	for i, s := range t.texts {
		out[i] = transcript.Snippet{Text: s, Start: float64(i)}
	}
	return out, nil
}

type catalog []track

func (c catalog) find(langs []string, generated *bool) (transcript.Handle, error) {
	for _, l := range langs {
		for _, t := range c {
			if t.code == l && (generated == nil || *generated == t.generated) {
				return t, nil
			}
		}
	}
	return nil, transcript.ErrNoTranscriptFound
}

func (c catalog) FindManual(langs []string) (transcript.Handle, error) {
	f := false
	return c.find(langs, &f)
}

func (c catalog) FindGenerated(langs []string) (transcript.Handle, error) {
	tr := true
	return c.find(langs, &tr)
}

func (c catalog) FindAny(langs []string) (transcript.Handle, error) { return c.find(langs, nil) }

type provider struct {
	cat    catalog
	lastID videoid.ID
}

func (p *provider) List(_ context.Context, id videoid.ID) (transcript.Catalog, error) {
	p.lastID = id
	return p.cat, nil
}

func TestTranscriptHandler(t *testing.T) {
	p := &provider{cat: catalog{
		{code: "en", generated: true, texts: []string{"hello", "world"}},
		{code: "es", texts: []string{"hola"}},
	}}
	h := transcriptHandler(transcript.NewService(p))

	_, out, err := h(context.Background(), nil, TranscriptInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", out.VideoID)
	assert.Equal(t, "en", out.Language)
	assert.True(t, out.Generated)
	assert.Equal(t, "hello\nworld", out.Text)
	assert.Equal(t, 2, out.SnippetCount)

	_, out, err = h(context.Background(), nil, TranscriptInput{VideoID: "aaaaaaaaaaa", Languages: []string{"es,en"}})
	require.NoError(t, err)
	assert.Equal(t, videoid.ID("aaaaaaaaaaa"), p.lastID)
	assert.Equal(t, "es", out.Language)
	assert.Equal(t, "hola", out.Text)
}

func TestTranscriptHandler_Errors(t *testing.T) {
	h := transcriptHandler(transcript.NewService(&provider{cat: catalog{{code: "ja", texts: []string{"x"}}}}))

	tests := []struct {
		name  string
		input TranscriptInput
		want  error
	}{
		{"no input", TranscriptInput{}, nil},
		{"bad id", TranscriptInput{VideoID: "nope"}, nil},
		{"bad url", TranscriptInput{URL: "https://example.com/x"}, videoid.ErrUnrecognizedURL},
		{"no language", TranscriptInput{VideoID: "dQw4w9WgXcQ"}, transcript.ErrNoTranscriptFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h(context.Background(), nil, tt.input)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	assert.NotPanics(t, func() { RegisterTools(server, transcript.NewService(&provider{})) })
}
