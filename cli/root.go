// Package cli wires the blogctl command tree together.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blogctl/cli/auth"
	"blogctl/cli/categories"
	"blogctl/cli/comments"
	"blogctl/cli/posts"
	"blogctl/cli/stats"
	"blogctl/cli/users"
	"blogctl/pkg/config"
	"blogctl/pkg/logger"
)

// RootCmd builds the root command. Configuration and the logger are
// loaded once in PersistentPreRunE and carried through the context to
// every subcommand.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Administer a blog platform from the terminal",
		Long:          "blogctl is a client for the blog administration API: posts, comments, categories, users and stats.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlagOverrides(cmd, cfg); err != nil {
				return err
			}
			log := logger.New(&logger.Config{
				Level: logger.LogLevel(cfg.Log.Level),
				JSON:  cfg.Log.JSON,
			})
			ctx := cmd.Context()
			ctx = config.ContextWith(ctx, cfg)
			ctx = logger.ContextWith(ctx, log)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().String("format", "", "Output format: auto, json or tui")
	root.PersistentFlags().String("base-url", "", "Blog API base URL")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		auth.LoginCmd(),
		auth.LogoutCmd(),
		auth.RegisterCmd(),
		auth.WhoamiCmd(),
		auth.ProfileCmd(),
		posts.Cmd(),
		comments.Cmd(),
		categories.Cmd(),
		users.Cmd(),
		stats.Cmd(),
	)
	return root
}

// applyFlagOverrides layers persistent flag values over the loaded
// configuration. Flags win over environment variables.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("format") {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		cfg.CLI.Format = format
	}
	if cmd.Flags().Changed("base-url") {
		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return fmt.Errorf("failed to get base-url flag: %w", err)
		}
		cfg.API.BaseURL = baseURL
	}
	if cmd.Flags().Changed("no-color") {
		noColor, err := cmd.Flags().GetBool("no-color")
		if err != nil {
			return fmt.Errorf("failed to get no-color flag: %w", err)
		}
		cfg.CLI.NoColor = noColor
	}
	if cmd.Flags().Changed("debug") {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return fmt.Errorf("failed to get debug flag: %w", err)
		}
		if debug {
			cfg.Log.Level = "debug"
		}
	}
	return cfg.Validate()
}
