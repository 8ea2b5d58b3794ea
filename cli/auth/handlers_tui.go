package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/tui/styles"
	"blogctl/pkg/logger"
)

func runLoginTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	email, err := c.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("failed to get email flag: %w", err)
	}
	password, err := c.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("failed to get password flag: %w", err)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if err := validator.New().Var(s, "required,email"); err != nil {
						return fmt.Errorf("a valid email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("login canceled: %w", err)
	}

	logger.FromContext(ctx).Debug("logging in", "email", email)
	if err := e.Session().Login(ctx, email, password); err != nil {
		return err
	}
	ident := e.Session().Identity()
	fmt.Println(styles.SuccessStyle.Render(
		fmt.Sprintf("Signed in as %s (%s)", ident.Username, ident.Role)))
	return nil
}

func runLogoutTUI(_ context.Context, e *cmd.CommandExecutor) error {
	e.Session().Logout()
	fmt.Println(styles.SuccessStyle.Render("Signed out"))
	return nil
}

func runRegisterTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	username, err := c.Flags().GetString("username")
	if err != nil {
		return fmt.Errorf("failed to get username flag: %w", err)
	}
	email, err := c.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("failed to get email flag: %w", err)
	}
	password, err := c.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("failed to get password flag: %w", err)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&username).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) < 3 {
						return fmt.Errorf("username must be at least 3 characters")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if err := validator.New().Var(s, "required,email"); err != nil {
						return fmt.Errorf("a valid email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("registration canceled: %w", err)
	}

	input := api.RegisterInput{Username: username, Email: email, Password: password}
	if err := e.Session().Register(ctx, input); err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render("Account created. Sign in with 'blogctl login'."))
	return nil
}

func runWhoamiTUI(_ context.Context, e *cmd.CommandExecutor) error {
	ident := e.Session().Identity()
	fmt.Println(renderIdentity(ident))
	return nil
}

func runProfileShowTUI(ctx context.Context, e *cmd.CommandExecutor) error {
	profile, err := e.Session().RefreshIdentity(ctx)
	if err != nil {
		return err
	}
	fmt.Println(renderIdentity(profile))
	return nil
}

func runProfileUpdateTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	ident := e.Session().Identity()
	username, err := c.Flags().GetString("username")
	if err != nil {
		return fmt.Errorf("failed to get username flag: %w", err)
	}
	email, err := c.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("failed to get email flag: %w", err)
	}
	if username == "" {
		username = ident.Username
	}
	if email == "" {
		email = ident.Email
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if err := validator.New().Var(s, "required,email"); err != nil {
						return fmt.Errorf("a valid email is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("profile update canceled: %w", err)
	}

	updated, err := e.Auth().UpdateProfile(ctx, api.ProfileInput{Username: username, Email: email})
	if err != nil {
		return err
	}
	e.Session().ReplaceIdentity(updated)
	fmt.Println(styles.SuccessStyle.Render("Profile updated"))
	fmt.Println(renderIdentity(updated))
	return nil
}

func renderIdentity(u *api.User) string {
	if u == nil {
		return styles.HelpStyle.Render("not signed in")
	}
	status := "active"
	if !u.IsActive {
		status = "deactivated"
	}
	lines := []string{
		styles.RenderTitle(u.Username),
		fmt.Sprintf("  ID:     %d", u.ID),
		fmt.Sprintf("  Email:  %s", u.Email),
		fmt.Sprintf("  Role:   %s", u.Role),
		fmt.Sprintf("  Status: %s", status),
	}
	return strings.Join(lines, "\n")
}
