package db

import (
	"context"

	"gavel-auction-service/internal/domain/user"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/outbound"

	"gorm.io/gorm"
)

// UserRepository implements the user repository interface
type UserRepository struct {
	*Repository[user.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(gormDB *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[user.User](gormDB, "user")}
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := r.Find(ctx, outbound.Query{
		Conds: map[string]any{"email": email},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFoundError("user")
	}
	return users[0], nil
}
