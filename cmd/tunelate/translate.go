package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/logger"
)

type translateOptions struct {
	target     string
	source     string
	inputPath  string
	outputPath string
	force      bool
	json       bool
}

func newTranslateCmd(ctx *commandContext) *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text through the provider fallback chain",
		Long: "Translate text given as arguments, read from --file, or piped on stdin.\n" +
			"Providers are tried in the configured order for every chunk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, ctx, args, &opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)

	cmd.Flags().StringVarP(&opts.target, "to", "t", "", "Target language (name or code, e.g. si or Sinhala)")
	cmd.Flags().StringVarP(&opts.source, "from", "f", language.Auto, "Source language (auto to detect)")
	cmd.Flags().StringVar(&opts.inputPath, "file", "", "Read text from a file")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the translation to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite the output file without asking")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the full result envelope as JSON")
	return cmd
}

func runTranslate(cmd *cobra.Command, cc *commandContext, args []string, opts *translateOptions) error {
	if len(args) > 0 && opts.inputPath != "" {
		return fmt.Errorf("pass text as arguments or --file, not both")
	}
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	text, err := readInput(args, opts.inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	orch, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug("Translating", "providers", orch.Providers(), "target", opts.target, "source", opts.source)

	res := orch.Translate(ctx, text, opts.target, opts.source)
	if opts.json {
		if err := writeJSON(cmd, res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error.Kind, res.Error.Message)
		}
		return nil
	}
	if !res.Success {
		return failureError(cmd.ErrOrStderr(), res.Error)
	}

	logger.Info("Translation complete",
		"provider", res.Data.Provider,
		"source_language", res.Data.SourceLanguage,
		"target_language", res.Data.TargetLanguage,
		"chunks", res.Data.ChunkCount,
	)
	return writeOutput(cmd.OutOrStdout(), opts.outputPath, res.Data.TranslatedText, opts.force)
}
