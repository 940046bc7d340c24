package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindById returns (nil, nil) when no row matches.
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
