package api

import "context"

// AuthService talks to the credential and profile endpoints.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a token and identity snapshot. A single
// attempt; rejection surfaces as an *APIError.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result LoginResult
	if err := s.client.post(ctx, "/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. It does not authenticate.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	return s.client.post(ctx, "/register", input, nil)
}

// Profile fetches the authoritative identity for the current token.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces profile fields and returns the updated identity.
func (s *AuthService) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	var user User
	if err := s.client.put(ctx, "/profile", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
