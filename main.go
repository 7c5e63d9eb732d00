// yt_transcript serves YouTube transcripts over a local HTTP API.
//
// GET /api/transcript resolves a share URL or video id, picks a caption track
// in the requested languages and returns it as plain text or JSON. The same
// lookup is optionally exposed as the youtube_transcript MCP tool, and the
// get command fetches a single transcript from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anatolykoptev/yt_transcript/internal/config"
	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/youtube"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// newService wires the YouTube client into a transcript service.
func newService(cfg config.Config, logger *slog.Logger) *transcript.Service {
	client := youtube.NewClient(
		youtube.WithHTTPClient(youtube.NewHTTPClient(cfg.HTTPTimeout, cfg.ProxyURL)),
		youtube.WithRateLimit(cfg.RateRPS, cfg.RateBurst),
		youtube.WithRetries(cfg.Retries),
		youtube.WithLogger(logger),
	)
	return transcript.NewService(client,
		transcript.WithLogger(logger),
		transcript.WithTimeout(cfg.RequestTimeout),
	)
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
