// Package mcptool exposes transcript lookup as an MCP tool.
package mcptool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/yt_transcript/internal/metrics"
	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

// TranscriptInput is the youtube_transcript tool input.
type TranscriptInput struct {
	URL                string   `json:"url,omitempty" jsonschema:"YouTube share URL (watch, youtu.be, shorts, embed, live)"`
	VideoID            string   `json:"video_id,omitempty" jsonschema:"11-character video id. Takes precedence over url"`
	Languages          []string `json:"languages,omitempty" jsonschema:"Preferred language codes in priority order (default: en, en-US, en-GB)"`
	PreferASR          bool     `json:"prefer_asr,omitempty" jsonschema:"Prefer auto-generated captions over manual ones"`
	PreserveFormatting bool     `json:"preserve_formatting,omitempty" jsonschema:"Keep inline markup such as <i> and <b>"`
}

// TranscriptOutput is the youtube_transcript tool result.
type TranscriptOutput struct {
	VideoID      string `json:"video_id"`
	Language     string `json:"language"`
	Generated    bool   `json:"generated"`
	Text         string `json:"text"`
	SnippetCount int    `json:"snippet_count"`
}

// RegisterTools registers youtube_transcript on server.
func RegisterTools(server *mcp.Server, svc *transcript.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the transcript of a YouTube video as plain text. Accepts a video URL or id and an ordered list of preferred languages. Manual captions are preferred over auto-generated ones unless prefer_asr is set.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, transcriptHandler(svc))
}

func transcriptHandler(svc *transcript.Service) func(context.Context, *mcp.CallToolRequest, TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		metrics.IncrTranscriptRequest()

		id, err := resolveInput(input)
		if err != nil {
			metrics.IncrInputError()
			return nil, TranscriptOutput{}, err
		}

		var langs []string
		for _, l := range input.Languages {
			langs = append(langs, transcript.ParseLanguages(l)...)
		}

		res, err := svc.Get(ctx, transcript.Request{
			ID:                 id,
			Languages:          langs,
			PreferASR:          input.PreferASR,
			PreserveFormatting: input.PreserveFormatting,
			Format:             transcript.FormatText,
		})
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		metrics.IncrTranscriptSuccess()

		return nil, TranscriptOutput{
			VideoID:      id.String(),
			Language:     res.Selection.LanguageCode,
			Generated:    res.Selection.Generated,
			Text:         string(res.Body),
			SnippetCount: len(res.Selection.Snippets),
		}, nil
	}
}

func resolveInput(input TranscriptInput) (videoid.ID, error) {
	if v := strings.TrimSpace(input.VideoID); v != "" {
		if !videoid.Valid(v) {
			return "", fmt.Errorf("video_id %q is not a valid video id", v)
		}
		return videoid.ID(v), nil
	}
	if strings.TrimSpace(input.URL) == "" {
		return "", errors.New("url or video_id is required")
	}
	return videoid.Resolve(input.URL)
}
