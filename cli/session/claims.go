package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogctl/cli/api"
)

// Claims is the identity payload embedded in the session token. It is
// decoded without signature verification: the client has no key material,
// and the claims only seed a provisional identity that the profile
// endpoint replaces. The server remains the authority.
type Claims struct {
	UserID    int64
	Username  string
	Email     string
	Role      api.Role
	ExpiresAt time.Time
}

// DecodeClaims parses the token payload. A token that cannot be parsed or
// carries no expiry is treated as invalid: expiry is what makes local
// restore decidable without a network call.
func DecodeClaims(raw string) (*Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, mapClaims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("token carries no expiry claim")
	}

	claims := &Claims{ExpiresAt: exp.Time}
	if id, ok := mapClaims["id"].(float64); ok {
		claims.UserID = int64(id)
	} else if sub, err := mapClaims.GetSubject(); err == nil && sub != "" {
		// Some issuers put the numeric id in sub instead.
		var id int64
		if _, err := fmt.Sscanf(sub, "%d", &id); err == nil {
			claims.UserID = id
		}
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = api.Role(role)
	}
	return claims, nil
}

// Expired reports whether the embedded expiry has passed.
func (c *Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Identity builds the provisional identity shown while the authoritative
// profile is being fetched.
func (c *Claims) Identity() *api.User {
	return &api.User{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
		IsActive: true,
	}
}
