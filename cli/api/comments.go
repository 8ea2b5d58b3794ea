package api

import (
	"context"
	"fmt"
)

// CommentService talks to the comment endpoints. Comments are listed and
// created under a post; deletion addresses the comment directly.
type CommentService struct {
	client *Client
}

func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

func (s *CommentService) List(ctx context.Context, postID int64) ([]Comment, error) {
	var comments []Comment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := s.client.get(ctx, path, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, postID int64, input CommentInput) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := s.client.post(ctx, path, input, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/comments/%d", id))
}
