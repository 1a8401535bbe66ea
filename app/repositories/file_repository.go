package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"blogue/app/models"
)

// FilePostRepository implements PostRepository over a single JSON file, the
// way the earliest flat-file backend worked: every write rewrites the whole
// file. Legacy files with flat-string comments load transparently.
type FilePostRepository struct {
	path  string
	mutex sync.RWMutex
	posts []*models.Post
}

// NewFilePostRepository loads (or starts) the posts file at path
func NewFilePostRepository(path string) (*FilePostRepository, error) {
	r := &FilePostRepository{path: path, posts: []*models.Post{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read posts file: %v", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.posts); err != nil {
			return nil, fmt.Errorf("failed to parse posts file: %v", err)
		}
	}
	return r, nil
}

// persist rewrites the whole file. Callers must hold the write lock.
func (r *FilePostRepository) persist() error {
	data, err := json.MarshalIndent(r.posts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0644)
}

func (r *FilePostRepository) find(id string) (*models.Post, int) {
	for i, post := range r.posts {
		if post.ID == id {
			return post, i
		}
	}
	return nil, -1
}

// clone returns a copy so callers never alias the in-memory store
func clonePost(post *models.Post) *models.Post {
	c := *post
	c.Comments = append([]models.Comment{}, post.Comments...)
	return &c
}

// Create stores a new post, assigning its id and timestamps
func (r *FilePostRepository) Create(post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post.BeforeCreate()
	r.posts = append(r.posts, clonePost(post))
	return r.persist()
}

// GetByID retrieves a post by ID
func (r *FilePostRepository) GetByID(id string) (*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	post, _ := r.find(id)
	if post == nil {
		return nil, ErrNotFound
	}
	return clonePost(post), nil
}

// List retrieves all posts, newest first
func (r *FilePostRepository) List() ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, clonePost(post))
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

// Update replaces a post's title and content and refreshes its UpdatedAt
func (r *FilePostRepository) Update(id, title, content string) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.Title = title
		post.Content = content
		post.UpdatedAt = time.Now()
	})
}

// Delete deletes a post by ID. Deleting an unknown id is a no-op.
func (r *FilePostRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, i := r.find(id)
	if i < 0 {
		return nil
	}
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	return r.persist()
}

// AppendComment adds a comment to the end of the post's comment sequence
func (r *FilePostRepository) AppendComment(id, text string) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.AppendComment(text)
	})
}

// RemoveCommentAt removes the comment at the given position. An out-of-range
// index leaves the post unchanged.
func (r *FilePostRepository) RemoveCommentAt(id string, index int) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.RemoveCommentAt(index)
	})
}

func (r *FilePostRepository) mutate(id string, fn func(*models.Post)) (*models.Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, _ := r.find(id)
	if post == nil {
		return nil, ErrNotFound
	}

	fn(post)

	if err := r.persist(); err != nil {
		return nil, err
	}
	return clonePost(post), nil
}

// FileUserRepository implements UserRepository over a single JSON file
type FileUserRepository struct {
	path  string
	mutex sync.RWMutex
	users []*models.User
}

// NewFileUserRepository loads (or starts) the users file at path
func NewFileUserRepository(path string) (*FileUserRepository, error) {
	r := &FileUserRepository{path: path, users: []*models.User{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %v", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.users); err != nil {
			return nil, fmt.Errorf("failed to parse users file: %v", err)
		}
	}
	return r, nil
}

func (r *FileUserRepository) persist() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0600)
}

// Create stores a new user
func (r *FileUserRepository) Create(user *models.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user.BeforeCreate()
	c := *user
	r.users = append(r.users, &c)
	return r.persist()
}

// GetByUsername retrieves a user by username
func (r *FileUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			c := *user
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateLastLogin records the time of a successful authentication
func (r *FileUserRepository) UpdateLastLogin(username string, when time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			user.LastLogin = &when
			return r.persist()
		}
	}
	return ErrNotFound
}
