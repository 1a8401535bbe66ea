package services

import (
	"errors"
	"fmt"
	"strings"

	"blogue/app/models"
	"blogue/app/repositories"
)

// ErrInvalid marks a validation failure. Controllers re-render the offending
// form instead of redirecting when they see it.
var ErrInvalid = errors.New("invalid input")

// ContentService handles business logic for posts and their comments. It
// holds no state of its own; everything durable lives in the repository.
type ContentService struct {
	posts repositories.PostRepository
}

// NewContentService creates a new ContentService
func NewContentService(posts repositories.PostRepository) *ContentService {
	return &ContentService{posts: posts}
}

// ListPosts retrieves all posts, newest first
func (s *ContentService) ListPosts() ([]*models.Post, error) {
	return s.posts.List()
}

// GetPost retrieves a post by ID
func (s *ContentService) GetPost(id string) (*models.Post, error) {
	return s.posts.GetByID(id)
}

// CreatePost creates a new post with validation. fileURL is the already
// resolved reference to an uploaded attachment, or nil.
func (s *ContentService) CreatePost(title, content string, fileURL *string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if err := requireFields(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		FileURL: fileURL,
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost updates a post's title and content with validation. FileURL and
// comments are untouched.
func (s *ContentService) UpdatePost(id, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if err := requireFields(title, content); err != nil {
		return nil, err
	}
	return s.posts.Update(id, title, content)
}

// DeletePost deletes a post. Unknown ids are a no-op.
func (s *ContentService) DeletePost(id string) error {
	return s.posts.Delete(id)
}

// AddComment appends a comment to a post
func (s *ContentService) AddComment(id, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalid)
	}
	return s.posts.AppendComment(id, text)
}

// RemoveCommentAt removes the comment at the given position. An out-of-range
// index is tolerated and leaves the post unchanged.
func (s *ContentService) RemoveCommentAt(id string, index int) (*models.Post, error) {
	return s.posts.RemoveCommentAt(id, index)
}

func requireFields(title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalid)
	}
	return nil
}
