package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oukeidos/tunelate/internal/auth"
)

type envOptions struct {
	service string
}

func newEnvCmd() *cobra.Command {
	opts := envOptions{}
	cmd := &cobra.Command{
		Use:         "env",
		Short:       "Manage provider API keys in the OS keychain",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, &opts)
		},
	}

	cmd.SetUsageTemplate(envUsageTemplate)
	cmd.PersistentFlags().StringVar(&opts.service, "service", "", "Service to manage ("+strings.Join(auth.Services(), ", ")+")")

	cmd.AddCommand(
		newEnvSetupCmd(&opts),
		newEnvDeleteCmd(&opts),
		newEnvStatusCmd(&opts),
	)
	return cmd
}

func newEnvSetupCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save an API key to the keychain (prompt only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSetup(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvDeleteCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an API key from the keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDelete(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvStatusCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show key status (default if no action given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func requireService(opts *envOptions) (string, error) {
	svc := strings.ToLower(strings.TrimSpace(opts.service))
	for _, known := range auth.Services() {
		if svc == known {
			return svc, nil
		}
	}
	if svc == "" {
		return "", fmt.Errorf("--service is required (one of: %s)", strings.Join(auth.Services(), ", "))
	}
	return "", fmt.Errorf("invalid service %q (must be one of: %s)", opts.service, strings.Join(auth.Services(), ", "))
}

func runEnvSetup(cmd *cobra.Command, opts *envOptions) error {
	svc, err := requireService(opts)
	if err != nil {
		return err
	}
	promptKey, err := promptForKey(fmt.Sprintf("%s API Key: ", auth.Label(svc)))
	if err != nil {
		return fmt.Errorf("error reading key: %w", err)
	}
	key := strings.TrimSpace(promptKey)
	if key == "" {
		return fmt.Errorf("API key is required for setup")
	}
	if err := saveKey(svc, key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s API key to keychain.\n", auth.Label(svc))
	return nil
}

func runEnvDelete(cmd *cobra.Command, opts *envOptions) error {
	svc, err := requireService(opts)
	if err != nil {
		return err
	}
	if err := deleteKey(svc); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s API key from keychain.\n", auth.Label(svc))
	return nil
}

func runEnvStatus(cmd *cobra.Command, opts *envOptions) error {
	services := auth.Services()
	if strings.TrimSpace(opts.service) != "" {
		svc, err := requireService(opts)
		if err != nil {
			return err
		}
		services = []string{svc}
	}

	out := cmd.OutOrStdout()
	for _, svc := range services {
		label := auth.Label(svc)
		if getStatus(svc) {
			fmt.Fprintf(out, "%s API Key: Found (source=%s)\n", label, auth.SourceKeychain)
			continue
		}
		if envKey, ok := getEnvKey(svc); ok && envKey != "" {
			fmt.Fprintf(out, "%s API Key: Found (source=%s %s)\n", label, auth.SourceEnv, auth.EnvVar(svc))
			continue
		}
		fmt.Fprintf(out, "%s API Key: Not Found (keychain empty, %s not set)\n", label, auth.EnvVar(svc))
	}
	return nil
}
