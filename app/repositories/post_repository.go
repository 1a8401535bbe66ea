package repositories

import (
	"fmt"
	"time"

	"blogue/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

func postKey(id string) []byte {
	return []byte(fmt.Sprintf("%s%s", PostKeyPrefix, id))
}

// Create stores a new post, assigning its id and timestamps
func (r *BadgerPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts, newest first
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

// Update replaces a post's title and content and refreshes its UpdatedAt.
// FileURL and comments are left untouched.
func (r *BadgerPostRepository) Update(id, title, content string) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.Title = title
		post.Content = content
		post.UpdatedAt = time.Now()
	})
}

// Delete deletes a post by ID. Deleting an unknown id is a no-op.
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(postKey(id))
	})
}

// AppendComment adds a comment to the end of the post's comment sequence
func (r *BadgerPostRepository) AppendComment(id, text string) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.AppendComment(text)
	})
}

// RemoveCommentAt removes the comment at the given position. An out-of-range
// index leaves the post unchanged.
func (r *BadgerPostRepository) RemoveCommentAt(id string, index int) (*models.Post, error) {
	return r.mutate(id, func(post *models.Post) {
		post.RemoveCommentAt(index)
	})
}

// mutate applies fn to the stored post inside a single transaction
func (r *BadgerPostRepository) mutate(id string, fn func(*models.Post)) (*models.Post, error) {
	var post models.Post

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		err = item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
		if err != nil {
			return err
		}

		fn(&post)

		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}
