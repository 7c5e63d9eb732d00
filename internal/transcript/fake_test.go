package transcript

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

type fakeTrack struct {
	code      string
	generated bool
	snippets  []Snippet
	fetchErr  error
	fetched   *bool
}

func (t *fakeTrack) LanguageCode() string { return t.code }
func (t *fakeTrack) Language() string     { return "lang-" + t.code }
func (t *fakeTrack) IsGenerated() bool    { return t.generated }

func (t *fakeTrack) Fetch(_ context.Context, _ bool) ([]Snippet, error) {
	if t.fetched != nil {
		*t.fetched = true
	}
	return t.snippets, t.fetchErr
}

// fakeCatalog searches tracks in language order. findErr replaces the miss
// error of the named step when set.
type fakeCatalog struct {
	tracks  []*fakeTrack
	findErr map[string]error
	calls   []string
}

func (c *fakeCatalog) find(step string, langs []string, match func(*fakeTrack) bool) (Handle, error) {
	c.calls = append(c.calls, step)
	if err := c.findErr[step]; err != nil {
		return nil, err
	}
	for _, lang := range langs {
		for _, t := range c.tracks {
			if t.code == lang && match(t) {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%s %v: %w", step, langs, ErrNoTranscriptFound)
}

func (c *fakeCatalog) FindManual(langs []string) (Handle, error) {
	return c.find("manual", langs, func(t *fakeTrack) bool { return !t.generated })
}

func (c *fakeCatalog) FindGenerated(langs []string) (Handle, error) {
	return c.find("generated", langs, func(t *fakeTrack) bool { return t.generated })
}

func (c *fakeCatalog) FindAny(langs []string) (Handle, error) {
	return c.find("any", langs, func(*fakeTrack) bool { return true })
}

type fakeProvider struct {
	catalog Catalog
	err     error
	calls   int
}

func (p *fakeProvider) List(context.Context, videoid.ID) (Catalog, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.catalog, nil
}
