// Package cmd carries the shared command execution plumbing: session
// setup, route guarding and mode dispatch.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/guard"
	"blogctl/cli/helpers"
	"blogctl/cli/notify"
	"blogctl/cli/session"
	"blogctl/cli/tui/models"
	"blogctl/pkg/config"
	"blogctl/pkg/logger"
)

// CommandExecutor handles the setup every command shares: building the
// gateway client, restoring the persisted session, enforcing the
// command's access requirement and detecting the output mode.
type CommandExecutor struct {
	mode    models.Mode
	session *session.Store
	client  *api.Client
	hub     *notify.Hub
}

// HandlerFunc is the signature for per-mode command handlers.
type HandlerFunc func(ctx context.Context, cmd *cobra.Command, executor *CommandExecutor, args []string) error

// ModeHandlers holds the handlers for each execution mode.
type ModeHandlers struct {
	JSON HandlerFunc
	TUI  HandlerFunc
}

// ExecutorOptions customizes executor construction.
type ExecutorOptions struct {
	// Require is the access requirement enforced before the handler
	// runs. The zero value is public.
	Require guard.Requirement
}

// NewCommandExecutor builds an executor: it wires storage, session and
// gateway together, restores the session from disk, then checks the
// command's requirement against the result.
func NewCommandExecutor(cmd *cobra.Command, opts ExecutorOptions) (*CommandExecutor, error) {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	mode := helpers.DetectMode(ctx)
	log.Debug("detected execution mode", "mode", mode)

	storage, err := session.NewFileStorage(cfg.CLI.StateDir)
	if err != nil {
		return nil, err
	}
	store := session.New(storage)
	client, err := api.NewClient(cfg, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	store.Bind(api.NewAuthService(client))
	if err := store.Restore(ctx); err != nil {
		return nil, err
	}

	switch guard.Check(store, opts.Require) {
	case guard.SignIn:
		return nil, helpers.NewCliError("SIGN_IN_REQUIRED",
			"you are not signed in", "run 'blogctl login' first")
	case guard.Home:
		return nil, helpers.NewCliError("FORBIDDEN",
			"your role does not allow this command")
	}

	return &CommandExecutor{
		mode:    mode,
		session: store,
		client:  client,
		hub:     notify.NewHub(),
	}, nil
}

// Execute runs the handler matching the detected mode.
func (e *CommandExecutor) Execute(ctx context.Context, cmd *cobra.Command, handlers ModeHandlers, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	switch e.mode {
	case models.ModeJSON:
		if handlers.JSON == nil {
			return fmt.Errorf("JSON mode handler not implemented")
		}
		return handlers.JSON(ctx, cmd, e, args)
	case models.ModeTUI:
		if handlers.TUI == nil {
			return fmt.Errorf("TUI mode handler not implemented")
		}
		return handlers.TUI(ctx, cmd, e, args)
	default:
		return fmt.Errorf("unsupported mode: %s", e.mode)
	}
}

// Mode returns the detected execution mode.
func (e *CommandExecutor) Mode() models.Mode {
	return e.mode
}

// Session returns the restored session store.
func (e *CommandExecutor) Session() *session.Store {
	return e.session
}

// Hub returns the process-wide notification hub.
func (e *CommandExecutor) Hub() *notify.Hub {
	return e.hub
}

// Auth returns the auth service.
func (e *CommandExecutor) Auth() *api.AuthService {
	return api.NewAuthService(e.client)
}

// Posts returns the posts service.
func (e *CommandExecutor) Posts() *api.PostService {
	return api.NewPostService(e.client)
}

// Comments returns the comments service.
func (e *CommandExecutor) Comments() *api.CommentService {
	return api.NewCommentService(e.client)
}

// Categories returns the categories service.
func (e *CommandExecutor) Categories() *api.CategoryService {
	return api.NewCategoryService(e.client)
}

// Users returns the user administration service.
func (e *CommandExecutor) Users() *api.UserService {
	return api.NewUserService(e.client)
}

// Stats returns the stats service.
func (e *CommandExecutor) Stats() *api.StatsService {
	return api.NewStatsService(e.client)
}

// ExecuteCommand combines executor creation, guarded execution and
// error output.
func ExecuteCommand(cmd *cobra.Command, opts ExecutorOptions, handlers ModeHandlers, args []string) error {
	executor, err := NewCommandExecutor(cmd, opts)
	if err != nil {
		return HandleCommonErrors(err, helpers.DetectMode(cmd.Context()))
	}
	return HandleCommonErrors(executor.Execute(cmd.Context(), cmd, handlers, args), executor.Mode())
}

// HandleCommonErrors converts recognized failures into structured
// errors and prints them in the right format.
func HandleCommonErrors(err error, mode models.Mode) error {
	if err == nil {
		return nil
	}
	if cliErr := helpers.CategorizeError(err); cliErr != nil {
		helpers.OutputError(cliErr, mode)
		return cliErr
	}
	helpers.OutputError(err, mode)
	return err
}
