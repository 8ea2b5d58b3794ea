package api

import (
	"context"
	"fmt"
)

// UserService talks to the admin user-management endpoints. Role and
// status changes are single-field mutations; the server returns the
// updated row.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) SetRole(ctx context.Context, id int64, role Role) (*User, error) {
	body := struct {
		Role Role `json:"role"`
	}{Role: role}

	var user User
	if err := s.client.put(ctx, fmt.Sprintf("/users/%d/role", id), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) SetStatus(ctx context.Context, id int64, active bool) (*User, error) {
	body := struct {
		IsActive bool `json:"is_active"`
	}{IsActive: active}

	var user User
	if err := s.client.put(ctx, fmt.Sprintf("/users/%d/status", id), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
