package repository

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/entity"
)

// RequestRepository define a porta de persistência para PurchaseRequest.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.PurchaseRequest) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error)
	Update(ctx context.Context, req *entity.PurchaseRequest) error
	// ApprovedItemIDs devolve o conjunto de item_id com ao menos uma
	// solicitação APROVADO, insumo da derivação de status de exibição.
	ApprovedItemIDs(ctx context.Context) (map[string]bool, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
