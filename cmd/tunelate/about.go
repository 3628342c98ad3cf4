package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "about",
		Short:       "Show a short description and link",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tunelate: extract and translate song lyrics from YouTube videos")
			fmt.Fprintln(out, "https://github.com/oukeidos/tunelate")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
