package repositories

import (
	"database/sql"
	"time"

	"blogue/app/models"

	_ "github.com/lib/pq"
)

// Migrate creates the Postgres schema if it does not exist yet. Safe to run
// on every start.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			file_url TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			position INT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (post_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			last_login TIMESTAMPTZ
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// PostgresPostRepository implements PostRepository using PostgreSQL.
// Comments live in their own table keyed by (post_id, position) so the
// positional-index contract survives the relational mapping.
type PostgresPostRepository struct {
	db *sql.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create stores a new post, assigning its id and timestamps
func (r *PostgresPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO posts (id, title, content, file_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		post.ID, post.Title, post.Content, post.FileURL, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return err
	}

	for i, comment := range post.Comments {
		_, err = tx.Exec(
			"INSERT INTO comments (post_id, position, text, created_at) VALUES ($1, $2, $3, $4)",
			post.ID, i, comment.Text, comment.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a post by ID with its comments
func (r *PostgresPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.QueryRow(
		"SELECT id, title, content, file_url, created_at, updated_at FROM posts WHERE id = $1", id).
		Scan(&post.ID, &post.Title, &post.Content, &post.FileURL, &post.CreatedAt, &post.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	comments, err := r.loadComments(id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return &post, nil
}

// List retrieves all posts, newest first
func (r *PostgresPostRepository) List() ([]*models.Post, error) {
	rows, err := r.db.Query(
		"SELECT id, title, content, file_url, created_at, updated_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.FileURL, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		comments, err := r.loadComments(post.ID)
		if err != nil {
			return nil, err
		}
		post.Comments = comments
	}
	return posts, nil
}

// Update replaces a post's title and content and refreshes its UpdatedAt
func (r *PostgresPostRepository) Update(id, title, content string) (*models.Post, error) {
	res, err := r.db.Exec(
		"UPDATE posts SET title = $2, content = $3, updated_at = $4 WHERE id = $1",
		id, title, content, time.Now())
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Delete deletes a post by ID. Deleting an unknown id is a no-op; comments
// go with the post via ON DELETE CASCADE.
func (r *PostgresPostRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM posts WHERE id = $1", id)
	return err
}

// AppendComment adds a comment to the end of the post's comment sequence
func (r *PostgresPostRepository) AppendComment(id, text string) (*models.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var next int
	err = tx.QueryRow("SELECT COUNT(*) FROM comments WHERE post_id = $1", id).Scan(&next)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO comments (post_id, position, text, created_at) VALUES ($1, $2, $3, $4)",
		id, next, text, time.Now())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// RemoveCommentAt removes the comment at the given position and shifts later
// comments down by one. An out-of-range index leaves the post unchanged.
func (r *PostgresPostRepository) RemoveCommentAt(id string, index int) (*models.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	res, err := tx.Exec("DELETE FROM comments WHERE post_id = $1 AND position = $2", id, index)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		_, err = tx.Exec(
			"UPDATE comments SET position = position - 1 WHERE post_id = $1 AND position > $2",
			id, index)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *PostgresPostRepository) loadComments(postID string) ([]models.Comment, error) {
	rows, err := r.db.Query(
		"SELECT text, created_at FROM comments WHERE post_id = $1 ORDER BY position", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.Text, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create stores a new user
func (r *PostgresUserRepository) Create(user *models.User) error {
	user.BeforeCreate()
	_, err := r.db.Exec(
		"INSERT INTO users (username, password_hash, created_at, last_login) VALUES ($1, $2, $3, $4)",
		user.Username, user.PasswordHash, user.CreatedAt, user.LastLogin)
	return err
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT username, password_hash, created_at, last_login FROM users WHERE username = $1", username).
		Scan(&user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin records the time of a successful authentication
func (r *PostgresUserRepository) UpdateLastLogin(username string, when time.Time) error {
	res, err := r.db.Exec("UPDATE users SET last_login = $2 WHERE username = $1", username, when)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
