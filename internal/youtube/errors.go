package youtube

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequestBlocked     = errors.New("youtube is blocking requests from this IP")
	ErrAgeRestricted      = errors.New("video is age restricted")
	ErrPoTokenRequired    = errors.New("caption track requires a PO token")
	ErrConsentCookie      = errors.New("failed to create consent cookie")
	ErrDataUnparsable     = errors.New("youtube data could not be parsed")
	ErrInvalidVideoID     = errors.New("invalid video id, pass the id rather than the url")
	ErrUnexpectedResponse = errors.New("unexpected youtube response")
	ErrVideoUnplayable    = errors.New("video is unplayable")
)

// UnplayableError reports a playability status other than OK.
type UnplayableError struct {
	Status     string
	Reason     string
	Subreasons []string
}

func (e *UnplayableError) Error() string {
	msg := fmt.Sprintf("video unplayable (%s)", e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Subreasons) > 0 {
		msg += " (" + strings.Join(e.Subreasons, "; ") + ")"
	}
	return msg
}

func (e *UnplayableError) Unwrap() error { return ErrVideoUnplayable }
