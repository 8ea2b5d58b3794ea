package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/authz"
	"blogctl/cli/cmd"
	"blogctl/cli/controller"
	"blogctl/cli/helpers"
	"blogctl/pkg/logger"
)

func runListJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, mine bool) error {
	filter, err := flagString(c, "filter")
	if err != nil {
		return err
	}
	source := e.Posts().List
	if mine {
		source = e.Posts().Mine
	}
	list := controller.NewList(source, e.Hub())
	if err := list.Load(ctx); err != nil {
		return err
	}
	posts := list.Items()
	if filter != "" {
		filtered := make([]api.Post, 0, len(posts))
		for _, post := range posts {
			if matchesFilter(&post, filter) {
				filtered = append(filtered, post)
			}
		}
		posts = filtered
	}
	return helpers.OutputJSON(map[string]any{
		"posts": posts,
		"total": len(posts),
	})
}

func matchesFilter(post *api.Post, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(post.Title), term) ||
		strings.Contains(strings.ToLower(post.Author), term) ||
		strings.Contains(strings.ToLower(post.Category), term)
}

func runShowJSON(ctx context.Context, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	post, comments, err := fetchPostWithComments(ctx, e, id)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"post":     post,
		"comments": comments,
	})
}

// fetchPostWithComments loads the post and its comments in parallel.
func fetchPostWithComments(ctx context.Context, e *cmd.CommandExecutor, id int64) (*api.Post, []api.Comment, error) {
	type postResult struct {
		post     *api.Post
		comments []api.Comment
	}
	var result postResult
	errCh := make(chan error, 2)
	go func() {
		post, err := e.Posts().Get(ctx, id)
		result.post = post
		errCh <- err
	}()
	go func() {
		comments, err := e.Comments().List(ctx, id)
		result.comments = comments
		errCh <- err
	}()
	for range 2 {
		if err := <-errCh; err != nil {
			return nil, nil, err
		}
	}
	return result.post, result.comments, nil
}

func runCreateJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	input, err := postInputFromFlags(c)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("creating post", "title", input.Title)
	created, err := e.Posts().Create(ctx, *input)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(created)
}

func runUpdateJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	current, err := e.Posts().Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanEditPost(e.Session().Identity(), current) {
		return helpers.NewCliError("FORBIDDEN", "only the author may edit a post")
	}
	input, err := postInputFromFlags(c)
	if err != nil {
		return err
	}
	updated, err := e.Posts().Update(ctx, id, *input)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(updated)
}

func runDeleteJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	force, err := c.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	current, err := e.Posts().Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeletePost(e.Session().Identity(), current) {
		return helpers.NewCliError("FORBIDDEN", "only an admin or the author may delete a post")
	}
	if !force {
		return helpers.NewCliError("CONFIRMATION_REQUIRED",
			"deleting a post cannot be undone", "re-run with --force to proceed")
	}
	if err := e.Posts().Delete(ctx, id); err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"message": "post deleted",
		"post_id": id,
	})
}

func postInputFromFlags(c *cobra.Command) (*api.PostInput, error) {
	title, err := flagString(c, "title")
	if err != nil {
		return nil, err
	}
	content, err := flagString(c, "content")
	if err != nil {
		return nil, err
	}
	category, err := c.Flags().GetInt64("category")
	if err != nil {
		return nil, fmt.Errorf("failed to get category flag: %w", err)
	}
	published, err := c.Flags().GetBool("published")
	if err != nil {
		return nil, fmt.Errorf("failed to get published flag: %w", err)
	}
	input := &api.PostInput{
		Title:       title,
		Content:     content,
		CategoryID:  category,
		IsPublished: published,
	}
	if err := validator.New().Struct(input); err != nil {
		return nil, helpers.NewCliError("INVALID_INPUT",
			"title, content and category are required", err.Error())
	}
	return input, nil
}
