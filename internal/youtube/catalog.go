package youtube

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/anatolykoptev/yt_transcript/internal/transcript"
)

// Catalog holds the caption tracks of one video, split by kind.
type Catalog struct {
	videoID      string
	manual       map[string]*Track
	generated    map[string]*Track
	translations []Translation
}

// Translation is a language YouTube can machine-translate tracks into.
type Translation struct {
	LanguageCode string
	Language     string
}

func newCatalog(c *Client, videoID, cookie string, r *captionsRenderer) *Catalog {
	cat := &Catalog{
		videoID:   videoID,
		manual:    make(map[string]*Track),
		generated: make(map[string]*Track),
	}
	for _, ct := range r.CaptionTracks {
		t := &Track{
			client:       c,
			cookie:       cookie,
			videoID:      videoID,
			url:          strings.Replace(ct.BaseURL, "&fmt=srv3", "", 1),
			languageCode: ct.LanguageCode,
			language:     ct.Name.String(),
			generated:    ct.Kind == "asr",
			translatable: ct.IsTranslatable,
		}
		if t.generated {
			cat.generated[t.languageCode] = t
		} else {
			cat.manual[t.languageCode] = t
		}
	}
	for _, tl := range r.TranslationLanguages {
		cat.translations = append(cat.translations, Translation{
			LanguageCode: tl.LanguageCode,
			Language:     tl.LanguageName.String(),
		})
	}
	return cat
}

// FindManual returns the first manually created track matching langs.
func (c *Catalog) FindManual(langs []string) (transcript.Handle, error) {
	return c.find(langs, c.manual)
}

// FindGenerated returns the first auto-generated track matching langs.
func (c *Catalog) FindGenerated(langs []string) (transcript.Handle, error) {
	return c.find(langs, c.generated)
}

// FindAny returns the first track matching langs, manual before generated
// for the same language.
func (c *Catalog) FindAny(langs []string) (transcript.Handle, error) {
	return c.find(langs, c.manual, c.generated)
}

// Translations lists the languages tracks can be translated into.
func (c *Catalog) Translations() []Translation { return c.translations }

func (c *Catalog) find(langs []string, sets ...map[string]*Track) (transcript.Handle, error) {
	for _, code := range langs {
		for _, set := range sets {
			if t, ok := set[code]; ok {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: video %s, requested %v, available %s",
		transcript.ErrNoTranscriptFound, c.videoID, langs, c.available())
}

func (c *Catalog) available() string {
	var codes []string
	for code := range c.manual {
		codes = append(codes, code)
	}
	for code := range c.generated {
		codes = append(codes, code+"(auto)")
	}
	if len(codes) == 0 {
		return "none"
	}
	slices.Sort(codes)
	return strings.Join(codes, ", ")
}

// Track is a single fetchable caption track.
type Track struct {
	client       *Client
	cookie       string
	videoID      string
	url          string
	languageCode string
	language     string
	generated    bool
	translatable bool
}

func (t *Track) LanguageCode() string { return t.languageCode }
func (t *Track) Language() string     { return t.language }
func (t *Track) IsGenerated() bool    { return t.generated }

// IsTranslatable reports whether YouTube offers translations of this track.
func (t *Track) IsTranslatable() bool { return t.translatable }

// Fetch downloads the track and parses it into snippets.
func (t *Track) Fetch(ctx context.Context, preserveFormatting bool) ([]transcript.Snippet, error) {
	if strings.Contains(t.url, "&exp=xpe") {
		return nil, fmt.Errorf("%w: %s", ErrPoTokenRequired, t.videoID)
	}
	target := t.url
	if strings.HasPrefix(target, "/") {
		target = t.client.baseURL + target
	}
	data, err := t.client.do(ctx, "GET", target, nil, map[string]string{
		"Accept-Language": "en-US",
		"User-Agent":      androidUserAgent,
		"Cookie":          t.cookie,
	}, maxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}
	return parseTimedText(data, preserveFormatting)
}
