package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/yt_transcript/internal/metrics"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

// Request describes one transcript lookup.
type Request struct {
	ID                 videoid.ID
	Languages          []string
	PreferASR          bool
	PreserveFormatting bool
	Format             Format
}

// Result is a rendered transcript.
type Result struct {
	Selection   Selection
	Body        []byte
	ContentType string
}

// Service answers transcript requests using a Provider.
type Service struct {
	provider Provider
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTimeout bounds the provider work of each request. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService returns a Service backed by p.
func NewService(p Provider, opts ...Option) *Service {
	s := &Service{provider: p, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get lists, selects, fetches and renders the transcript described by req.
// Errors are either one of the package sentinels or an *UnexpectedError.
func (s *Service) Get(ctx context.Context, req Request) (*Result, error) {
	if req.ID == "" {
		return nil, videoid.ErrMissingInput
	}
	langs := req.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var sel *Selection
	err := metrics.Track(ctx, "transcript "+req.ID.String(), func(ctx context.Context) error {
		var err error
		sel, err = s.fetch(ctx, req.ID, langs, req.PreferASR, req.PreserveFormatting)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	body, contentType, err := Render(req.ID, sel, req.Format)
	if err != nil {
		return nil, classify(err)
	}

	s.logger.Debug("transcript selected",
		slog.String("id", req.ID.String()),
		slog.String("language", sel.LanguageCode),
		slog.Bool("generated", sel.Generated),
		slog.Int("snippets", len(sel.Snippets)),
		slog.String("format", req.Format.String()),
	)
	return &Result{Selection: *sel, Body: body, ContentType: contentType}, nil
}

func (s *Service) fetch(ctx context.Context, id videoid.ID, langs []string, preferASR, preserve bool) (*Selection, error) {
	catalog, err := s.provider.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}

	h, err := Select(catalog, langs, preferASR)
	if err != nil {
		return nil, err
	}

	snippets, err := h.Fetch(ctx, preserve)
	if err != nil {
		return nil, fmt.Errorf("fetch %s transcript: %w", h.LanguageCode(), err)
	}

	return &Selection{
		LanguageCode: h.LanguageCode(),
		Language:     h.Language(),
		Generated:    h.IsGenerated(),
		Snippets:     snippets,
	}, nil
}
