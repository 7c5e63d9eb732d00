package youtube

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/anatolykoptev/yt_transcript/internal/transcript"
)

// formattingTags survive markup stripping when formatting is preserved.
var formattingTags = map[string]bool{
	"strong": true, "em": true, "b": true, "i": true, "mark": true,
	"small": true, "del": true, "ins": true, "sub": true, "sup": true,
}

// parseTimedText turns a timedtext XML document into snippets in document
// order. Elements without text are skipped.
func parseTimedText(data []byte, preserveFormatting bool) ([]transcript.Snippet, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: timedtext: %w", ErrDataUnparsable, err)
	}
	out := make([]transcript.Snippet, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if line.Text == "" {
			continue
		}
		start, err := parseSeconds(line.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrDataUnparsable, line.Start)
		}
		dur, err := parseSeconds(line.Dur)
		if err != nil {
			return nil, fmt.Errorf("%w: dur %q", ErrDataUnparsable, line.Dur)
		}
		out = append(out, transcript.Snippet{
			Text:     stripMarkup(html.UnescapeString(line.Text), preserveFormatting),
			Start:    start,
			Duration: dur,
		})
	}
	return out, nil
}

func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// stripMarkup removes HTML tags from s. Text is copied raw so entities that
// survived unescaping stay as they are. With keepFormatting, the tags in
// formattingTags are kept verbatim.
func stripMarkup(s string, keepFormatting bool) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	z := xhtml.NewTokenizer(strings.NewReader(s))
	var b bytes.Buffer
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			if z.Err() == io.EOF {
				return b.String()
			}
			return s
		case xhtml.TextToken:
			b.Write(z.Raw())
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			if keepFormatting {
				name, _ := z.TagName()
				if formattingTags[string(name)] {
					b.Write(z.Raw())
				}
			}
		}
	}
}
