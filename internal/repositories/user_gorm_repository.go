package repositories

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"madamchoice/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create checks for an existing email and inserts the user in one
// transaction. A concurrent signup that slips past the check is caught by the
// unique index and reported as ErrDuplicate as well.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return errors.Wrap(err, "check email")
		}
		if count > 0 {
			return errors.Wrapf(ErrDuplicate, "email %s", user.Email)
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.Wrapf(ErrDuplicate, "email %s", user.Email)
			}
			return errors.Wrap(err, "insert user")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return errors.Wrap(err, "create user")
	}
	return nil
}

// GetByEmail retrieves a user by exact email match.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "user with email %s", email)
		}
		return nil, errors.Wrapf(err, "get user by email %s", email)
	}
	return &user, nil
}
