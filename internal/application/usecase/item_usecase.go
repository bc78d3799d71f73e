package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/application/ports"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/policy"
	"github.com/grupond/compras-api/internal/domain/repository"
	"github.com/grupond/compras-api/internal/domain/stock"
)

// ItemUseCase operações de estoque: CRUD, retirada e derivação do status de
// exibição. Toda mutação roda em transação junto com sua entrada de auditoria
// e recalcula o status armazenado pela regra de limiar.
type ItemUseCase struct {
	txRunner    ports.TxRunner
	itemRepo    repository.ItemRepository
	requestRepo repository.RequestRepository
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	txRunner ports.TxRunner,
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, requestRepo: requestRepo}
}

// Create cadastra um item. SKU duplicado responde ErrConflict; o status
// armazenado sai sempre da regra de limiar, nunca do cliente.
func (uc *ItemUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !policy.Can(actor.Role, policy.ActionManageItems) {
		return nil, domain.ErrPermission
	}
	if in.Name == "" || in.SKU == "" {
		return nil, fmt.Errorf("%w: name e sku são obrigatórios", domain.ErrValidation)
	}
	if in.MinQty < 1 {
		return nil, fmt.Errorf("%w: estoque mínimo deve ser ao menos 1", domain.ErrValidation)
	}
	if in.CurrentQty < 0 {
		return nil, fmt.Errorf("%w: quantidade não pode ser negativa", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: preço não pode ser negativo", domain.ErrValidation)
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitUN
	}
	if !entity.ValidUnit(unit) {
		return nil, fmt.Errorf("%w: unidade desconhecida %q", domain.ErrValidation, in.Unit)
	}

	existing, err := uc.itemRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s já cadastrado", domain.ErrConflict, in.SKU)
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:         uuid.New().String(),
		Name:       in.Name,
		SKU:        in.SKU,
		Category:   in.Category,
		CurrentQty: in.CurrentQty,
		MinQty:     in.MinQty,
		Price:      in.Price,
		Unit:       unit,
		Status:     stock.BaselineStatus(in.CurrentQty, in.MinQty),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return logRepo.Append(ctx, &entity.SystemLog{
			ID:          uuid.New().String(),
			Action:      entity.LogNovoItem,
			Description: fmt.Sprintf("Cadastrou %s (%s)", item.Name, item.SKU),
			UserName:    actor.Name,
			UserID:      actor.ID,
			Timestamp:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, item)
}

// Update atualização parcial; o status armazenado é recalculado dos valores
// mesclados de current_qty/min_qty.
func (uc *ItemUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !policy.Can(actor.Role, policy.ActionManageItems) {
		return nil, domain.ErrPermission
	}

	var item *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		var err error
		item, err = itemRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.CurrentQty != nil {
			if *in.CurrentQty < 0 {
				return fmt.Errorf("%w: quantidade não pode ser negativa", domain.ErrValidation)
			}
			item.CurrentQty = *in.CurrentQty
		}
		if in.MinQty != nil {
			if *in.MinQty < 1 {
				return fmt.Errorf("%w: estoque mínimo deve ser ao menos 1", domain.ErrValidation)
			}
			item.MinQty = *in.MinQty
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return fmt.Errorf("%w: preço não pode ser negativo", domain.ErrValidation)
			}
			item.Price = *in.Price
		}
		if in.Unit != nil {
			if !entity.ValidUnit(*in.Unit) {
				return fmt.Errorf("%w: unidade desconhecida %q", domain.ErrValidation, *in.Unit)
			}
			item.Unit = *in.Unit
		}
		item.Status = stock.BaselineStatus(item.CurrentQty, item.MinQty)
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return logRepo.Append(ctx, &entity.SystemLog{
			ID:          uuid.New().String(),
			Action:      entity.LogEdicaoItem,
			Description: fmt.Sprintf("Editou item %s", item.Name),
			UserName:    actor.Name,
			UserID:      actor.ID,
			Timestamp:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, item)
}

// Withdraw retira quantidade do estoque com motivo auditável. Retirada acima
// do saldo responde ErrInsufficientStock e não altera nada (a transação
// descarta qualquer escrita parcial).
func (uc *ItemUseCase) Withdraw(ctx context.Context, actor dto.Actor, id string, in dto.WithdrawItemRequest) (*dto.ItemResponse, error) {
	if !policy.Can(actor.Role, policy.ActionManageItems) {
		return nil, domain.ErrPermission
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: motivo da retirada é obrigatório", domain.ErrValidation)
	}

	var item *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		var err error
		item, err = itemRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		if in.Quantity > item.CurrentQty {
			return fmt.Errorf("%w: saldo %d, pedido %d", domain.ErrInsufficientStock, item.CurrentQty, in.Quantity)
		}
		item.CurrentQty -= in.Quantity
		item.Status = stock.BaselineStatus(item.CurrentQty, item.MinQty)
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return logRepo.Append(ctx, &entity.SystemLog{
			ID:          uuid.New().String(),
			Action:      entity.LogSaidaEstoque,
			Description: fmt.Sprintf("Retirou %d do item %s. Motivo: %s", in.Quantity, item.Name, in.Reason),
			UserName:    actor.Name,
			UserID:      actor.ID,
			Timestamp:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, item)
}

// Delete remove o item. As solicitações que o referenciam ficam com a
// referência pendurada (FK ON DELETE SET NULL) e são exibidas como
// "item removido"; a exclusão nunca se propaga para elas.
func (uc *ItemUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if !policy.Can(actor.Role, policy.ActionDeleteItem) {
		return domain.ErrPermission
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		item, err := itemRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		if err := itemRepo.Delete(ctx, id); err != nil {
			return err
		}
		return logRepo.Append(ctx, &entity.SystemLog{
			ID:          uuid.New().String(),
			Action:      entity.LogExclusaoItem,
			Description: fmt.Sprintf("Removeu item %s (%s)", item.Name, item.SKU),
			UserName:    actor.Name,
			UserID:      actor.ID,
			Timestamp:   time.Now(),
		})
	})
}

// GetByID devolve um item com status de exibição derivado.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, item)
}

// List lista itens com o status de exibição derivado do conjunto vivo de
// solicitações aprovadas. Nunca persistido nem cacheado.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.itemRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	approved, err := uc.requestRepo.ApprovedItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, item := range list {
		items = append(items, toItemResponse(item, approved[item.ID]))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ItemUseCase) toResponse(ctx context.Context, item *entity.InventoryItem) (*dto.ItemResponse, error) {
	approved, err := uc.requestRepo.ApprovedItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(item, approved[item.ID])
	return &out, nil
}

func toItemResponse(item *entity.InventoryItem, hasApprovedReplenishment bool) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		SKU:           item.SKU,
		Category:      item.Category,
		CurrentQty:    item.CurrentQty,
		MinQty:        item.MinQty,
		Price:         item.Price,
		Unit:          item.Unit,
		Status:        item.Status,
		DisplayStatus: stock.DisplayStatus(item.Status, hasApprovedReplenishment),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
