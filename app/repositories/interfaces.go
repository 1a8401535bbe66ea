package repositories

import (
	"errors"
	"time"

	"blogue/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines the interface for post data access. All backends
// share the same contract: unknown ids resolve to ErrNotFound on reads and
// to a no-op on Delete, and an out-of-range comment index is silently
// ignored by RemoveCommentAt.
type PostRepository interface {
	List() ([]*models.Post, error)
	GetByID(id string) (*models.Post, error)
	Create(post *models.Post) error
	Update(id, title, content string) (*models.Post, error)
	Delete(id string) error
	AppendComment(id, text string) (*models.Post, error)
	RemoveCommentAt(id string, index int) (*models.Post, error)
}

// UserRepository defines the interface for admin user data access
type UserRepository interface {
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	UpdateLastLogin(username string, when time.Time) error
}
