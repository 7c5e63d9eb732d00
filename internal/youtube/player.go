package youtube

import (
	"fmt"

	"github.com/anatolykoptev/yt_transcript/internal/transcript"
)

// assertPlayable maps a non-OK playability status to an error.
func assertPlayable(videoID string, ps *playabilityStatus) error {
	if ps == nil || ps.Status == "" || ps.Status == "OK" {
		return nil
	}
	switch ps.Status {
	case "ERROR":
		if ps.Reason == "" || ps.Reason == reasonUnavailable {
			return fmt.Errorf("%w: %s", transcript.ErrVideoUnavailable, videoID)
		}
	case "LOGIN_REQUIRED":
		switch ps.Reason {
		case reasonBot:
			return ErrRequestBlocked
		case reasonAgeRestricted:
			return fmt.Errorf("%w: %s", ErrAgeRestricted, videoID)
		}
	}
	return &UnplayableError{Status: ps.Status, Reason: ps.Reason, Subreasons: ps.subreasons()}
}
