package repositories

import (
	"fmt"
	"time"

	"blogue/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func userKey(username string) []byte {
	return []byte(fmt.Sprintf("%s%s", UserKeyPrefix, username))
}

// Create stores a new user
func (r *BadgerUserRepository) Create(user *models.User) error {
	user.BeforeCreate()

	data, err := marshalEntity(user)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.Username), data)
	})
}

// GetByUsername retrieves a user by username
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin records the time of a successful authentication
func (r *BadgerUserRepository) UpdateLastLogin(username string, when time.Time) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var user models.User
		err = item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
		if err != nil {
			return err
		}

		user.LastLogin = &when

		data, err := marshalEntity(&user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(username), data)
	})
}
