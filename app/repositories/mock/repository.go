package mock

import (
	"sync"
	"time"

	"blogue/app/models"
	"blogue/app/repositories"
)

// PostRepository is an in-memory PostRepository for tests. Setting Err makes
// every operation fail with it, to exercise storage-failure paths.
type PostRepository struct {
	posts map[string]*models.Post
	order []string
	mutex sync.RWMutex

	Err error
}

// UserRepository is an in-memory UserRepository for tests
type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex

	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*models.User),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
	m.order = nil
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.BeforeCreate()
	m.posts[post.ID] = post
	m.order = append(m.order, post.ID)
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	// Newest first: walk insertion order backwards.
	for i := len(m.order) - 1; i >= 0; i-- {
		if post, exists := m.posts[m.order[i]]; exists {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *PostRepository) Update(id, title, content string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post.Title = title
	post.Content = content
	post.UpdatedAt = time.Now()
	return post, nil
}

func (m *PostRepository) Delete(id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.posts, id)
	return nil
}

func (m *PostRepository) AppendComment(id, text string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post.AppendComment(text)
	return post, nil
}

func (m *PostRepository) RemoveCommentAt(id string, index int) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post.RemoveCommentAt(index)
	return post, nil
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user.BeforeCreate()
	m.users[user.Username] = user
	return nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) UpdateLastLogin(username string, when time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[username]
	if !exists {
		return repositories.ErrNotFound
	}
	user.LastLogin = &when
	return nil
}
