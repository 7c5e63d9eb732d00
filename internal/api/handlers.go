package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/yt_transcript/internal/metrics"
	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

const cacheControl = "public, max-age=86400"

type pingResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, pingResponse{OK: true, Service: ServiceName, Version: ServiceVersion})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(metrics.Format()))
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	metrics.IncrTranscriptRequest()
	q := r.URL.Query()

	id, err := requestedID(q.Get("videoId"), q.Get("url"))
	if err != nil {
		metrics.IncrInputError()
		s.writeError(w, http.StatusBadRequest, inputMessage(err))
		return
	}

	preferASR, err := parseBool(q, "prefer_asr")
	if err != nil {
		metrics.IncrInputError()
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	preserve, err := parseBool(q, "preserve_formatting")
	if err != nil {
		metrics.IncrInputError()
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	langs := s.languages
	if q.Has("lang") {
		if parsed := transcript.ParseLanguages(q.Get("lang")); len(parsed) > 0 {
			langs = parsed
		}
	}

	res, err := s.svc.Get(r.Context(), transcript.Request{
		ID:                 id,
		Languages:          langs,
		PreferASR:          preferASR,
		PreserveFormatting: preserve,
		Format:             transcript.ParseFormat(q.Get("format")),
	})
	if err != nil {
		s.writeServiceError(w, id, err)
		return
	}

	metrics.IncrTranscriptSuccess()
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Body)
}

var (
	errNoInput    = errors.New("no url or videoId")
	errBadVideoID = errors.New("invalid videoId")
)

// requestedID picks videoId over url. A videoId is used as given and must
// already be a valid identifier.
func requestedID(rawID, rawURL string) (videoid.ID, error) {
	if rawID != "" {
		if !videoid.Valid(rawID) {
			return "", fmt.Errorf("%w: %q", errBadVideoID, rawID)
		}
		return videoid.ID(rawID), nil
	}
	if rawURL == "" {
		return "", errNoInput
	}
	return videoid.Resolve(rawURL)
}

func inputMessage(err error) string {
	switch {
	case errors.Is(err, errNoInput):
		return "Provide ?url= or ?videoId="
	case errors.Is(err, videoid.ErrMissingInput):
		return "Missing url or videoId"
	case errors.Is(err, errBadVideoID):
		return "Invalid videoId"
	case errors.Is(err, videoid.ErrInvalidURL):
		return "Invalid URL"
	default:
		return "Could not extract videoId"
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, id videoid.ID, err error) {
	var (
		status int
		detail string
	)
	switch {
	case errors.Is(err, videoid.ErrMissingInput):
		metrics.IncrInputError()
		status, detail = http.StatusBadRequest, "Missing url or videoId"
	case errors.Is(err, transcript.ErrTranscriptsDisabled):
		metrics.IncrTranscriptsDisabled()
		status, detail = http.StatusForbidden, "Transcripts disabled for this video"
	case errors.Is(err, transcript.ErrNoTranscriptFound):
		metrics.IncrNoTranscriptFound()
		status, detail = http.StatusNotFound, "No transcript found for requested languages"
	case errors.Is(err, transcript.ErrVideoUnavailable):
		metrics.IncrVideoUnavailable()
		status, detail = http.StatusNotFound, "Video unavailable"
	case errors.Is(err, transcript.ErrEmptyTranscript):
		metrics.IncrEmptyTranscript()
		status, detail = http.StatusBadGateway, "Empty transcript returned"
	default:
		metrics.IncrUnexpectedError()
		cause := err
		var ue *transcript.UnexpectedError
		if errors.As(err, &ue) {
			cause = ue.Err
		}
		s.logger.Error("transcript request failed",
			slog.String("id", id.String()),
			slog.Any("error", cause),
		)
		s.writeError(w, http.StatusInternalServerError, "Unexpected error: "+cause.Error())
		return
	}
	s.logger.Info("transcript not served",
		slog.String("id", id.String()),
		slog.Int("status", status),
		slog.String("reason", err.Error()),
	)
	s.writeError(w, status, detail)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
