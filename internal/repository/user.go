package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cuplet/cuplet-go/internal/model"
	"github.com/cuplet/cuplet-go/internal/storage"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
//
// Emails are compared byte for byte: "A@x.com" and "a@x.com" are different
// accounts. Nothing is trimmed or lower-cased on the way in.
type UserRepository struct {
	store *storage.Engine
	now   func() time.Time
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *storage.Engine) *UserRepository {
	return &UserRepository{store: store, now: time.Now}
}

// Create inserts a new user and sets the generated ID and creation time on the
// user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = r.now().UTC()

	err := r.store.Update(ctx, func(doc *storage.Document) error {
		for _, u := range doc.Users {
			if u.Email == created.Email {
				return ErrDuplicateEmail
			}
		}
		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return err
	}

	*user = created
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r *UserRepository) find(match func(model.User) bool) (*model.User, error) {
	var found *model.User
	err := r.store.View(func(doc *storage.Document) error {
		for _, u := range doc.Users {
			if match(u) {
				user := u
				found = &user
				return nil
			}
		}
		return ErrUserNotFound
	})
	return found, err
}
