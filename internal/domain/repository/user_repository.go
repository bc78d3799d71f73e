package repository

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/entity"
)

// UserRepository define a porta de persistência para User (DIP).
// Métodos de busca devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
