package auth

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/helpers"
	"blogctl/pkg/logger"
)

func runLoginJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	email, err := c.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("failed to get email flag: %w", err)
	}
	password, err := c.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("failed to get password flag: %w", err)
	}
	if email == "" || password == "" {
		return helpers.NewCliError("MISSING_CREDENTIALS", "email and password are required in JSON mode")
	}

	logger.FromContext(ctx).Debug("logging in", "email", email)
	if err := e.Session().Login(ctx, email, password); err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"message": "signed in",
		"user":    e.Session().Identity(),
	})
}

func runLogoutJSON(_ context.Context, e *cmd.CommandExecutor) error {
	e.Session().Logout()
	return helpers.OutputJSON(map[string]any{"message": "signed out"})
}

func runRegisterJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	input, err := registerInputFromFlags(c)
	if err != nil {
		return err
	}
	if err := e.Session().Register(ctx, *input); err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"message": "account created, sign in with 'blogctl login'",
	})
}

func registerInputFromFlags(c *cobra.Command) (*api.RegisterInput, error) {
	username, err := c.Flags().GetString("username")
	if err != nil {
		return nil, fmt.Errorf("failed to get username flag: %w", err)
	}
	email, err := c.Flags().GetString("email")
	if err != nil {
		return nil, fmt.Errorf("failed to get email flag: %w", err)
	}
	password, err := c.Flags().GetString("password")
	if err != nil {
		return nil, fmt.Errorf("failed to get password flag: %w", err)
	}
	input := &api.RegisterInput{Username: username, Email: email, Password: password}
	if err := validator.New().Struct(input); err != nil {
		return nil, helpers.NewCliError("INVALID_INPUT",
			"username (min 3), a valid email and password (min 6) are required", err.Error())
	}
	return input, nil
}

func runWhoamiJSON(_ context.Context, e *cmd.CommandExecutor) error {
	return helpers.OutputJSON(e.Session().Identity())
}

func runProfileShowJSON(ctx context.Context, e *cmd.CommandExecutor) error {
	profile, err := e.Session().RefreshIdentity(ctx)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(profile)
}

func runProfileUpdateJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	input, err := profileInputFromFlags(c)
	if err != nil {
		return err
	}
	updated, err := e.Auth().UpdateProfile(ctx, *input)
	if err != nil {
		return err
	}
	e.Session().ReplaceIdentity(updated)
	return helpers.OutputJSON(updated)
}

func profileInputFromFlags(c *cobra.Command) (*api.ProfileInput, error) {
	username, err := c.Flags().GetString("username")
	if err != nil {
		return nil, fmt.Errorf("failed to get username flag: %w", err)
	}
	email, err := c.Flags().GetString("email")
	if err != nil {
		return nil, fmt.Errorf("failed to get email flag: %w", err)
	}
	if username == "" && email == "" {
		return nil, helpers.NewCliError("NOTHING_TO_UPDATE", "provide --username or --email")
	}
	input := &api.ProfileInput{Username: username, Email: email}
	if err := validator.New().Struct(input); err != nil {
		return nil, helpers.NewCliError("INVALID_INPUT", "email must be valid", err.Error())
	}
	return input, nil
}
