package models

import (
	"time"

	"github.com/google/uuid"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation. Fields already
// populated (e.g. by the migration tool) are left alone.
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// AppendComment adds a comment to the end of the post's comment sequence.
func (p *Post) AppendComment(text string) {
	p.Comments = append(p.Comments, Comment{
		Text:      text,
		CreatedAt: time.Now(),
	})
}

// RemoveCommentAt removes the comment at the given position. An index
// outside [0, len) leaves the sequence unchanged and reports false; later
// comments shift down by one. Positional addressing means an index is only
// valid until the next deletion.
func (p *Post) RemoveCommentAt(index int) bool {
	if index < 0 || index >= len(p.Comments) {
		return false
	}
	p.Comments = append(p.Comments[:index], p.Comments[index+1:]...)
	return true
}
