package api

import "time"

// Role is the server-side authorization role of a user. The API defines a
// total order for route access: admin > moderator > user. Individual
// resource gates do not follow the order uniformly (see the authz package).
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the roles the API knows about.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is both an identity (the authenticated profile) and a row in the
// admin user listing.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements controller.Entity.
func (u User) EntityID() int64 { return u.ID }

// Post is a blog post as returned by the API. CommentsCount is computed
// client-side by the posts service, not part of the wire format.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AuthorID      int64     `json:"author_id"`
	Author        string    `json:"author"`
	CategoryID    int64     `json:"category_id"`
	Category      string    `json:"category"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	CommentsCount int       `json:"comments_count"`
}

func (p Post) EntityID() int64 { return p.ID }

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	Author    string    `json:"author"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Comment) EntityID() int64 { return c.ID }

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c Category) EntityID() int64 { return c.ID }

// Stats is the GET /stats dashboard payload.
type Stats struct {
	TotalUsers      int            `json:"total_users"`
	TotalPosts      int            `json:"total_posts"`
	TotalComments   int            `json:"total_comments"`
	PostsLastWeek   int            `json:"posts_last_week"`
	PostsByCategory map[string]int `json:"posts_by_category"`
	UsersByRole     map[string]int `json:"users_by_role"`
}

// LoginResult is the POST /login response.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// RegisterInput is the POST /register request body. Registration never
// authenticates; a fresh login is required afterwards.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// PostInput is the create/update request body for posts. Ownership is
// never sent: the server assigns author_id on creation.
type PostInput struct {
	Title       string `json:"title"       validate:"required"`
	Content     string `json:"content"     validate:"required"`
	CategoryID  int64  `json:"category_id" validate:"required"`
	IsPublished bool   `json:"is_published"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required"`
}

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// ProfileInput is the PUT /profile request body.
type ProfileInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}
