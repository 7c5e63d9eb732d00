// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

// Defaults. The bind address must match the client page.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 17653
)

var ErrInvalid = errors.New("invalid config")

// Config holds all service settings. It is read once at startup and not
// modified afterwards.
type Config struct {
	Host             string
	Port             int
	DefaultLanguages []string

	HTTPTimeout    time.Duration // per outbound request
	RequestTimeout time.Duration // whole transcript request, 0 = none
	Retries        int
	RateRPS        float64 // outbound requests per second, 0 = unlimited
	RateBurst      int
	ProxyURL       string

	MCPPort   string // empty disables the MCP listener
	LogLevel  string
	LogFormat string
}

// Load reads Config from the environment.
func Load() Config {
	return Config{
		Host:             env.Str("YT_HOST", DefaultHost),
		Port:             env.Int("YT_PORT", DefaultPort),
		DefaultLanguages: env.List("YT_DEFAULT_LANGS", "en,en-US,en-GB"),
		HTTPTimeout:      env.Duration("YT_HTTP_TIMEOUT", 20*time.Second),
		RequestTimeout:   env.Duration("YT_REQUEST_TIMEOUT", 0),
		Retries:          env.Int("YT_RETRIES", 0),
		RateRPS:          env.Float("YT_RATE_RPS", 0),
		RateBurst:        env.Int("YT_RATE_BURST", 1),
		ProxyURL:         env.Str("YT_PROXY_URL", ""),
		MCPPort:          env.Str("MCP_PORT", ""),
		LogLevel:         env.Str("LOG_LEVEL", "info"),
		LogFormat:        env.Str("LOG_FORMAT", "text"),
	}
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("%w: YT_HOST is empty", ErrInvalid)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: YT_PORT %d out of range", ErrInvalid, c.Port)
	}
	if c.MCPPort != "" {
		if p, err := strconv.Atoi(c.MCPPort); err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("%w: MCP_PORT %q", ErrInvalid, c.MCPPort)
		}
	}
	if c.HTTPTimeout < 0 || c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalid)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: YT_RETRIES %d", ErrInvalid, c.Retries)
	}
	if c.RateRPS < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
