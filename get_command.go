package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

func newGetCommand(a *app) *cobra.Command {
	var (
		lang      string
		format    string
		preferASR bool
		preserve  bool
	)

	cmd := &cobra.Command{
		Use:   "get <url-or-video-id>",
		Short: "Print one transcript to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := videoid.Resolve(args[0])
			if err != nil {
				return err
			}
			langs := a.cfg.DefaultLanguages
			if parsed := transcript.ParseLanguages(lang); len(parsed) > 0 {
				langs = parsed
			}

			res, err := newService(a.cfg, a.logger).Get(cmd.Context(), transcript.Request{
				ID:                 id,
				Languages:          langs,
				PreferASR:          preferASR,
				PreserveFormatting: preserve,
				Format:             transcript.ParseFormat(format),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(res.Body))
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Comma-separated language codes in priority order")
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "Output format: txt or json")
	cmd.Flags().BoolVar(&preferASR, "prefer-asr", false, "Prefer auto-generated captions")
	cmd.Flags().BoolVar(&preserve, "preserve-formatting", false, "Keep inline markup such as <i> and <b>")
	return cmd
}
