package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/yt_transcript/internal/api"
	"github.com/anatolykoptev/yt_transcript/internal/config"
	"github.com/anatolykoptev/yt_transcript/internal/mcptool"
	"github.com/anatolykoptev/yt_transcript/internal/metrics"
	"github.com/anatolykoptev/yt_transcript/internal/transcript"
)

// app holds what every command needs once config is loaded.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "yt_transcript",
		Short:         "Local YouTube transcript API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg, os.Stderr)
			slog.SetDefault(a.logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	})
	rootCmd.AddCommand(newGetCommand(a))

	return rootCmd
}

func (a *app) serve(cmd *cobra.Command) error {
	ctx := cmd.Context()
	svc := newService(a.cfg, a.logger)

	srv := api.New(a.cfg.Addr(), svc,
		api.WithLogger(a.logger),
		api.WithDefaultLanguages(a.cfg.DefaultLanguages),
	)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("starting yt_transcript",
		slog.String("version", version),
		slog.String("addr", a.cfg.Addr()),
		slog.Int("retries", a.cfg.Retries),
		slog.Bool("proxy", a.cfg.ProxyURL != ""),
	)

	if a.cfg.MCPPort != "" {
		go runMCP(a.cfg.MCPPort, svc)
	}

	<-ctx.Done()
	slog.Info("shutting down")
	srv.Stop()
	return nil
}

func runMCP(port string, svc *transcript.Service) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "yt_transcript",
		Version: version,
	}, nil)
	mcptool.RegisterTools(server, svc)
	slog.Info("mcp tools registered", slog.String("port", port))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "yt_transcript",
		Version:      version,
		Port:         port,
		WriteTimeout: 2 * time.Minute,
		Metrics:      metrics.Format,
	}); err != nil {
		slog.Error("mcp server failed", slog.Any("error", err))
	}
}
