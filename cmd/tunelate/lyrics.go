package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/backend"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/pipeline"
	"github.com/oukeidos/tunelate/internal/retry"
	"github.com/oukeidos/tunelate/internal/translator"
)

type lyricsOptions struct {
	target      string
	source      string
	noTranslate bool
	outputPath  string
	force       bool
	json        bool
}

// lyricsOutput is the --json shape of the lyrics command.
type lyricsOutput struct {
	Status             pipeline.Status    `json:"status"`
	Lyrics             *backend.Lyrics    `json:"lyrics,omitempty"`
	Translation        *translator.Result `json:"translation,omitempty"`
	ExtractionAttempts int                `json:"extractionAttempts"`
	Error              *outputError       `json:"error,omitempty"`
}

type outputError struct {
	Message string         `json:"message"`
	Kind    apperrors.Kind `json:"kind,omitempty"`
}

func newLyricsCmd(ctx *commandContext) *cobra.Command {
	opts := lyricsOptions{}
	cmd := &cobra.Command{
		Use:   "lyrics <youtube-url>",
		Short: "Extract lyrics for a YouTube video and translate them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLyrics(cmd, ctx, args[0], &opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)

	cmd.Flags().StringVarP(&opts.target, "to", "t", "", "Target language (name or code)")
	cmd.Flags().StringVarP(&opts.source, "from", "f", language.Auto, "Source language of the lyrics (auto to detect)")
	cmd.Flags().BoolVar(&opts.noTranslate, "no-translate", false, "Only extract the lyrics")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite the output file without asking")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print lyrics and translation envelope as JSON")
	return cmd
}

func runLyrics(cmd *cobra.Command, cc *commandContext, url string, opts *lyricsOptions) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	if !opts.noTranslate && strings.TrimSpace(opts.target) == "" {
		return fmt.Errorf("--to is required unless --no-translate is set")
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	pcfg := pipeline.Config{
		URL:             url,
		TargetLang:      opts.target,
		SourceLang:      opts.source,
		SkipTranslation: opts.noTranslate,
		Retry: retry.Policy{
			MaxRetries:   cfg.Retry.MaxRetries,
			InitialDelay: cfg.RetryInitialDelay(),
		},
		Extractor: newBackendClient(cfg),
		OnExtractRetry: func(attempt int, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Extraction attempt %d failed: %s Retrying...\n", attempt, apperrors.PublicMessage(err))
		},
	}
	if !opts.noTranslate {
		orch, err := newOrchestrator(ctx, cfg)
		if err != nil {
			return err
		}
		pcfg.Translator = orch
	}

	res, runErr := pipeline.Run(ctx, pcfg)
	if opts.json {
		return writeLyricsJSON(cmd, res, runErr)
	}
	if runErr != nil {
		if res.Translation != nil && !res.Translation.Success {
			return failureError(cmd.ErrOrStderr(), res.Translation.Error)
		}
		return extractionError(cmd, runErr)
	}
	return writeOutput(cmd.OutOrStdout(), opts.outputPath, formatLyrics(res), opts.force)
}

func writeLyricsJSON(cmd *cobra.Command, res pipeline.Result, runErr error) error {
	out := lyricsOutput{
		Status:             res.Status,
		Lyrics:             res.Lyrics,
		Translation:        res.Translation,
		ExtractionAttempts: res.ExtractionAttempts,
	}
	if runErr != nil {
		kind, _ := apperrors.KindOf(runErr)
		out.Error = &outputError{Message: apperrors.PublicMessage(runErr), Kind: kind}
	}
	if err := writeJSON(cmd, out); err != nil {
		return err
	}
	return runErr
}

func extractionError(cmd *cobra.Command, err error) error {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), apperrors.UserMessage(kind))
	if apperrors.IsRetryable(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "This is usually temporary; try again in a moment.")
	}
	return fmt.Errorf("%s: %s", kind, apperrors.PublicMessage(err))
}

func formatLyrics(res pipeline.Result) string {
	var b strings.Builder
	l := res.Lyrics
	switch {
	case l.Title != "" && l.Artist != "":
		fmt.Fprintf(&b, "%s - %s\n\n", l.Artist, l.Title)
	case l.Title != "":
		fmt.Fprintf(&b, "%s\n\n", l.Title)
	}
	b.WriteString(strings.TrimSpace(l.Lyrics))
	if res.Translation != nil && res.Translation.Data != nil {
		d := res.Translation.Data
		fmt.Fprintf(&b, "\n\n--- %s (via %s) ---\n\n", language.DisplayName(d.TargetLanguage), d.Provider)
		b.WriteString(d.TranslatedText)
	}
	return b.String()
}
