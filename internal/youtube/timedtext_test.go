package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
	<text start="0.5" dur="1.54">Hey there</text>
	<text start="2.04" dur="3.1">how are &amp;lt;b&amp;gt;you&amp;lt;/b&amp;gt;</text>
	<text start="5.2"></text>
	<text start="6">no duration</text>
	<text start="7.5" dur="2">&amp;lt;font color=&quot;#E5E5E5&quot;&amp;gt;grey&amp;lt;/font&amp;gt; &amp;amp;amp; &lt;i&gt;it&lt;/i&gt;</text>
</transcript>`

func TestParseTimedText(t *testing.T) {
	snippets, err := parseTimedText([]byte(sampleTimedText), false)
	require.NoError(t, err)
	require.Len(t, snippets, 4)

	assert.Equal(t, "Hey there", snippets[0].Text)
	assert.InDelta(t, 0.5, snippets[0].Start, 1e-9)
	assert.InDelta(t, 1.54, snippets[0].Duration, 1e-9)

	assert.Equal(t, "how are you", snippets[1].Text)

	assert.Equal(t, "no duration", snippets[2].Text)
	assert.InDelta(t, 6.0, snippets[2].Start, 1e-9)
	assert.Zero(t, snippets[2].Duration)

	assert.Equal(t, "grey &amp; it", snippets[3].Text)
}

func TestParseTimedText_PreserveFormatting(t *testing.T) {
	snippets, err := parseTimedText([]byte(sampleTimedText), true)
	require.NoError(t, err)
	require.Len(t, snippets, 4)

	assert.Equal(t, "how are <b>you</b>", snippets[1].Text)
	assert.Equal(t, "grey &amp; <i>it</i>", snippets[3].Text)
}

func TestParseTimedText_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "<transcript><text start="},
		{"empty", ""},
		{"bad start", `<transcript><text start="abc" dur="1">x</text></transcript>`},
		{"bad dur", `<transcript><text start="1" dur="x">x</text></transcript>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTimedText([]byte(tt.doc), false)
			assert.ErrorIs(t, err, ErrDataUnparsable)
		})
	}
}

func TestParseTimedText_NoLines(t *testing.T) {
	snippets, err := parseTimedText([]byte(`<transcript></transcript>`), false)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		keep bool
		want string
	}{
		{"plain text", false, "plain text"},
		{"a < b and c > d", false, "a < b and c > d"},
		{"<strong>bold</strong> <span>x</span>", false, "bold x"},
		{"<strong>bold</strong> <span>x</span>", true, "<strong>bold</strong> x"},
		{"<em>e</em><mark>m</mark><small>s</small>", true, "<em>e</em><mark>m</mark><small>s</small>"},
		{"<del>d</del><ins>i</ins><sub>1</sub><sup>2</sup>", true, "<del>d</del><ins>i</ins><sub>1</sub><sup>2</sup>"},
		{`<font color="#fff">white</font>`, true, "white"},
		{"line<br/>break", false, "linebreak"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkup(tt.in, tt.keep))
		})
	}
}
