package repository

//go:generate mockgen -source=user_repository.go -destination=mocks/mock_user_repository.go -package=mocks

import (
	"context"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
)

// UserRepository defines the storage capability for users.
//
// Errors are classified with the apperror sentinels: GetByID and Update report a
// missing row as apperror.ErrNotFound, Update rejects an empty update list with a
// validation error, and every other backend failure is an apperror.ErrIO. Delete
// treats a missing row as success.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	Update(ctx context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error)
	Delete(ctx context.Context, id entity.UserID) error
}
