package repository

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/entity"
)

// ItemRepository define a porta de persistência para InventoryItem.
// GetByIDForUpdate bloqueia a linha (SELECT FOR UPDATE) e só faz sentido
// dentro de uma transação; buscas devolvem (nil, nil) quando não há registro.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	ListSKUs(ctx context.Context, prefix string) ([]string, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
}
