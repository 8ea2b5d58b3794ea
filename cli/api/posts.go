package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"blogctl/pkg/logger"
)

// countWorkers caps the parallel comment-count lookups per listing.
const countWorkers = 8

// PostService talks to the post collection endpoints.
type PostService struct {
	client *Client
}

func NewPostService(client *Client) *PostService {
	return &PostService{client: client}
}

// List fetches all posts and decorates each with its comment count. A
// failed count lookup leaves the count at zero rather than failing the
// whole listing.
func (s *PostService) List(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := s.client.get(ctx, "/posts", &posts); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	s.fillCommentCounts(ctx, posts)
	return posts, nil
}

// Mine fetches the authenticated user's posts, decorated like List.
func (s *PostService) Mine(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := s.client.get(ctx, "/my-posts", &posts); err != nil {
		return nil, fmt.Errorf("failed to list own posts: %w", err)
	}
	s.fillCommentCounts(ctx, posts)
	return posts, nil
}

func (s *PostService) fillCommentCounts(ctx context.Context, posts []Post) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countWorkers)
	for i := range posts {
		g.Go(func() error {
			var comments []Comment
			path := fmt.Sprintf("/posts/%d/comments", posts[i].ID)
			if err := s.client.get(gctx, path, &comments); err != nil {
				logger.FromContext(ctx).Debug("comment count lookup failed",
					"post_id", posts[i].ID, "error", err)
				return nil
			}
			posts[i].CommentsCount = len(comments)
			return nil
		})
	}
	_ = g.Wait()
}

// Get fetches a single post by id.
func (s *PostService) Get(ctx context.Context, id int64) (*Post, error) {
	var post Post
	if err := s.client.get(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create submits a new post. The server assigns id and author_id.
func (s *PostService) Create(ctx context.Context, input PostInput) (*Post, error) {
	var post Post
	if err := s.client.post(ctx, "/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces a post's fields and returns the server's version.
func (s *PostService) Update(ctx context.Context, id int64, input PostInput) (*Post, error) {
	var post Post
	if err := s.client.put(ctx, fmt.Sprintf("/posts/%d", id), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/posts/%d", id))
}
