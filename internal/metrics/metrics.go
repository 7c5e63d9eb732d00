// Package metrics keeps process-wide operational counters.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

var counters struct {
	TranscriptRequests  atomic.Int64
	TranscriptSuccesses atomic.Int64
	InputErrors         atomic.Int64
	TranscriptsDisabled atomic.Int64
	NoTranscriptFound   atomic.Int64
	VideoUnavailable    atomic.Int64
	EmptyTranscripts    atomic.Int64
	UnexpectedErrors    atomic.Int64
	UpstreamRequests    atomic.Int64
	UpstreamErrors      atomic.Int64
	SlowOperations      atomic.Int64
}

// SlowThreshold is the duration above which Track logs an operation as slow.
var SlowThreshold = 5 * time.Second

var keys = []string{
	"transcript_requests", "transcript_successes",
	"input_errors", "transcripts_disabled", "no_transcript_found",
	"video_unavailable", "empty_transcripts", "unexpected_errors",
	"upstream_requests", "upstream_errors",
	"slow_operations",
}

// Snapshot returns the current value of every counter.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"transcript_requests":  counters.TranscriptRequests.Load(),
		"transcript_successes": counters.TranscriptSuccesses.Load(),
		"input_errors":         counters.InputErrors.Load(),
		"transcripts_disabled": counters.TranscriptsDisabled.Load(),
		"no_transcript_found":  counters.NoTranscriptFound.Load(),
		"video_unavailable":    counters.VideoUnavailable.Load(),
		"empty_transcripts":    counters.EmptyTranscripts.Load(),
		"unexpected_errors":    counters.UnexpectedErrors.Load(),
		"upstream_requests":    counters.UpstreamRequests.Load(),
		"upstream_errors":      counters.UpstreamErrors.Load(),
		"slow_operations":      counters.SlowOperations.Load(),
	}
}

// Format renders the counters as "name value" lines.
func Format() string {
	m := Snapshot()
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrTranscriptRequest()   { counters.TranscriptRequests.Add(1) }
func IncrTranscriptSuccess()   { counters.TranscriptSuccesses.Add(1) }
func IncrInputError()          { counters.InputErrors.Add(1) }
func IncrTranscriptsDisabled() { counters.TranscriptsDisabled.Add(1) }
func IncrNoTranscriptFound()   { counters.NoTranscriptFound.Add(1) }
func IncrVideoUnavailable()    { counters.VideoUnavailable.Add(1) }
func IncrEmptyTranscript()     { counters.EmptyTranscripts.Add(1) }
func IncrUnexpectedError()     { counters.UnexpectedErrors.Add(1) }
func IncrUpstreamRequest()     { counters.UpstreamRequests.Add(1) }
func IncrUpstreamError()       { counters.UpstreamErrors.Add(1) }

// Track runs fn and logs a warning if it takes longer than SlowThreshold.
func Track(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > SlowThreshold {
		counters.SlowOperations.Add(1)
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
