// Package auth implements the session commands: login, logout,
// register, whoami and profile.
package auth

import (
	"context"

	"github.com/spf13/cobra"

	"blogctl/cli/cmd"
	"blogctl/cli/guard"
)

// LoginCmd returns the login command.
func LoginCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the blog API",
		Long:  "Exchange credentials for a session token. The token and identity snapshot are persisted locally.",
		RunE:  runLogin,
	}
	c.Flags().String("email", "", "Account email")
	c.Flags().String("password", "", "Account password")
	return c
}

func runLogin(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Public}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runLoginJSON(ctx, c, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runLoginTUI(ctx, c, e)
		},
	}, args)
}

// LogoutCmd returns the logout command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the local session",
		RunE:  runLogout,
	}
}

func runLogout(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Public}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runLogoutJSON(ctx, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runLogoutTUI(ctx, e)
		},
	}, args)
}

// RegisterCmd returns the account registration command.
func RegisterCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new account. Registration never signs you in; run 'blogctl login' afterwards.",
		RunE:  runRegister,
	}
	c.Flags().String("username", "", "Username (at least 3 characters)")
	c.Flags().String("email", "", "Account email")
	c.Flags().String("password", "", "Password (at least 6 characters)")
	return c
}

func runRegister(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Public}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runRegisterJSON(ctx, c, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runRegisterTUI(ctx, c, e)
		},
	}, args)
}

// WhoamiCmd returns the identity inspection command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE:  runWhoami,
	}
}

func runWhoami(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runWhoamiJSON(ctx, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runWhoamiTUI(ctx, e)
		},
	}, args)
}

// ProfileCmd returns the profile command group.
func ProfileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and update your profile",
	}
	c.AddCommand(profileShowCmd(), profileUpdateCmd())
	return c
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the authoritative profile",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runProfileShowJSON(ctx, e)
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runProfileShowTUI(ctx, e)
				},
			}, args)
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runProfileUpdateJSON(ctx, c, e)
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runProfileUpdateTUI(ctx, c, e)
				},
			}, args)
		},
	}
	c.Flags().String("username", "", "New username")
	c.Flags().String("email", "", "New email")
	return c
}
