package transcript

import (
	"errors"
	"fmt"
)

// Select picks a transcript from c for langs.
//
// Manual transcripts are tried first unless preferASR is set, then generated
// ones, then any transcript. A miss at the first two steps is absorbed; a miss
// at the last step fails with ErrNoTranscriptFound. Failures other than a miss
// are returned as they are.
func Select(c Catalog, langs []string, preferASR bool) (Handle, error) {
	if !preferASR {
		h, err := c.FindManual(langs)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, ErrNoTranscriptFound) {
			return nil, fmt.Errorf("find manual transcript: %w", err)
		}
	}

	h, err := c.FindGenerated(langs)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, ErrNoTranscriptFound) {
		return nil, fmt.Errorf("find generated transcript: %w", err)
	}

	h, err = c.FindAny(langs)
	if err != nil {
		if errors.Is(err, ErrNoTranscriptFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find transcript: %w", err)
	}
	return h, nil
}
