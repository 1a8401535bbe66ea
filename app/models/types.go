package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post is a single blog entry with an optional file attachment and an
// ordered sequence of comments.
type Post struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	FileURL   *string   `json:"fileUrl" validate:"-"`
	Comments  []Comment `json:"comments" validate:"-"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

// Comment is a free-text reaction on a post. Comments carry no identity of
// their own; they are addressed by their current position in the parent
// post's sequence.
type Comment struct {
	Text      string    `json:"text" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the administrative identity. There is exactly one.
type User struct {
	Username     string     `json:"username" validate:"required,min=3,max=50"`
	PasswordHash string     `json:"passwordHash" validate:"required"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin"`
}
