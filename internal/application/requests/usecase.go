package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/application/ports"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/policy"
	"github.com/grupond/compras-api/internal/domain/repository"
	"github.com/grupond/compras-api/internal/domain/stock"
)

// Item provisionado na aprovação de solicitação de item novo.
const (
	provisionedMinQty = 5
	provisionedUnit   = entity.UnitUN
)

// highVolumeMessage texto consultivo devolvido na criação quando o volume
// solicitado passa da heurística de tela. Nunca bloqueia.
const highVolumeMessage = "Alto volume solicitado. Por favor, verifique se esta é uma reposição urgente."

// itemRemovedLabel exibido quando a solicitação aponta para item já excluído.
const itemRemovedLabel = "item removido"

// UseCase motor do ciclo de vida das solicitações de compra: valida e executa
// as transições de status com os efeitos colaterais sobre o estoque, tudo
// dentro de uma transação (TxRunner) para nunca aplicar metade.
type UseCase struct {
	txRunner    ports.TxRunner
	itemRepo    repository.ItemRepository
	requestRepo repository.RequestRepository
	pdfGen      PDFGenerator
}

// NewUseCase constrói o motor. pdfGen pode ser nil quando o documento de
// pedido não é necessário (testes).
func NewUseCase(
	txRunner ports.TxRunner,
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	pdfGen PDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		pdfGen:      pdfGen,
	}
}

// Create abre uma solicitação em PENDENTE com data de hoje e registra
// "Nova Solicitação" na auditoria, na mesma transação.
func (uc *UseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	if !policy.Can(actor.Role, policy.ActionCreateRequest) {
		return nil, domain.ErrPermission
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: preço unitário não pode ser negativo", domain.ErrValidation)
	}
	ref := entity.ItemRef{
		ItemID:         in.ItemID,
		CustomName:     in.CustomItemName,
		CustomCategory: in.CustomCategory,
	}
	if !ref.Valid() {
		return nil, fmt.Errorf("%w: informe um item do estoque ou o nome de um item novo, nunca ambos", domain.ErrValidation)
	}

	itemName := ref.CustomName
	warning := ""
	if ref.IsExisting() {
		item, err := uc.itemRepo.GetByID(ctx, ref.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, ref.ItemID)
		}
		itemName = item.Name
		if stock.HighVolume(item.CurrentQty, item.MinQty, in.Quantity) {
			warning = highVolumeMessage
		}
	}

	req := &entity.PurchaseRequest{
		ID:            uuid.New().String(),
		Item:          ref,
		RequesterID:   actor.ID,
		RequesterName: actor.Name,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		Observation:   in.Observation,
		Status:        entity.RequestStatusPendente,
		Date:          time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		requestRepo repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		if err := requestRepo.Create(ctx, req); err != nil {
			return err
		}
		return logRepo.Append(ctx, &entity.SystemLog{
			ID:          uuid.New().String(),
			Action:      entity.LogNovaSolicitacao,
			Description: fmt.Sprintf("Solicitou %dx %s", req.Quantity, itemName),
			UserName:    actor.Name,
			UserID:      actor.ID,
			Timestamp:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	out := uc.toResponse(ctx, req, nil)
	out.HighVolumeWarning = warning
	return out, nil
}

// UpdateStatus executa uma transição do ciclo de vida. Regras:
//   - só GESTOR e ADM_MASTER decidem;
//   - PENDENTE → APROVADO: solicitação de item novo provisiona o
//     InventoryItem (SKU gerado, qty 0, mínimo 5, preço unitário, Crítico)
//     antes de persistir o novo status, na mesma transação;
//   - APROVADO → COMPRADO: única operação que aumenta estoque; soma a
//     quantidade ao item vinculado exatamente uma vez (repetir a transição é
//     rejeitado pela tabela, nunca soma duas vezes);
//   - PENDENTE → REJEITADO: exige motivo não vazio;
//   - qualquer outra mudança: ErrInvalidTransition.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor dto.Actor, requestID string, in dto.UpdateRequestStatusRequest) (*dto.RequestResponse, error) {
	if !policy.Can(actor.Role, policy.ActionDecideRequest) {
		return nil, domain.ErrPermission
	}
	if !entity.ValidRequestStatus(in.Status) {
		return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrValidation, in.Status)
	}

	var updated *entity.PurchaseRequest
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error {
		req, err := requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("%w: solicitação %s", domain.ErrNotFound, requestID)
		}
		if !entity.CanTransition(req.Status, in.Status) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, req.Status, in.Status)
		}

		prev := req.Status
		description := fmt.Sprintf("Mudou status para %s", in.Status)

		switch in.Status {
		case entity.RequestStatusAprovado:
			if req.Item.IsCustom() {
				if err := uc.provisionItem(ctx, itemRepo, req); err != nil {
					return err
				}
			}

		case entity.RequestStatusComprado:
			// A referência pode ter pendurado se o item foi excluído entre a
			// aprovação e a compra; nesse caso não há estoque a somar.
			if req.Item.ItemID != "" {
				item, err := itemRepo.GetByIDForUpdate(ctx, req.Item.ItemID)
				if err != nil {
					return err
				}
				if item != nil {
					item.CurrentQty += req.Quantity
					item.Status = stock.BaselineStatus(item.CurrentQty, item.MinQty)
					item.UpdatedAt = time.Now()
					if err := itemRepo.Update(ctx, item); err != nil {
						return err
					}
				}
			}

		case entity.RequestStatusRejeitado:
			if in.Reason == "" {
				return fmt.Errorf("%w: motivo da rejeição é obrigatório", domain.ErrValidation)
			}
			req.RejectionReason = in.Reason
			description = fmt.Sprintf("Mudou status para %s. Motivo: %s", in.Status, in.Reason)
		}

		req.Status = in.Status
		if err := requestRepo.Update(ctx, req); err != nil {
			return err
		}
		if err := logRepo.Append(ctx, &entity.SystemLog{
			ID:             uuid.New().String(),
			Action:         entity.LogAtualizacaoPedido,
			Description:    description,
			UserName:       actor.Name,
			UserID:         actor.ID,
			PreviousStatus: prev,
			Timestamp:      time.Now(),
		}); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, updated, nil), nil
}

// provisionItem cria o item de estoque de uma solicitação de item novo e a
// vincula. Roda dentro da transação da aprovação: o item criado e o novo
// status entram juntos ou nenhum entra.
func (uc *UseCase) provisionItem(ctx context.Context, itemRepo repository.ItemRepository, req *entity.PurchaseRequest) error {
	skus, err := itemRepo.ListSKUs(ctx, stock.SKUPrefix)
	if err != nil {
		return err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:         uuid.New().String(),
		Name:       req.Item.CustomName,
		SKU:        stock.NextSKU(skus),
		Category:   categoryOrDefault(req.Item.CustomCategory),
		CurrentQty: 0,
		MinQty:     provisionedMinQty,
		Price:      req.UnitPrice,
		Unit:       provisionedUnit,
		Status:     entity.ItemStatusCritico, // nasce com estoque zero
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := itemRepo.Create(ctx, item); err != nil {
		return err
	}
	// A partir daqui a solicitação referencia o item catalogado; o nome
	// original sobrevive no próprio item.
	req.Item = entity.ItemRef{ItemID: item.ID}
	return nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "Geral"
	}
	return category
}

// GetByID devolve uma solicitação.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RequestResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, req, nil), nil
}

// List lista solicitações com paginação, resolvendo os nomes dos itens
// vinculados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.RequestListResponse, error) {
	page.DefaultPage()
	list, err := uc.requestRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]itemInfo)
	items := make([]dto.RequestResponse, 0, len(list))
	for _, req := range list {
		items = append(items, *uc.toResponse(ctx, req, cache))
	}
	return &dto.RequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GeneratePDF monta o documento de pedido de compra da solicitação.
func (uc *UseCase) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("gerador de PDF não configurado")
	}
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitação %s", domain.ErrNotFound, id)
	}
	return uc.pdfGen.GenerateRequestPDF(ctx, req, uc.itemName(ctx, req, nil))
}

// itemInfo nome e categoria exibidos do alvo de uma solicitação.
type itemInfo struct {
	Name     string
	Category string
}

// itemName resolve só o nome exibido do alvo da solicitação.
func (uc *UseCase) itemName(ctx context.Context, req *entity.PurchaseRequest, cache map[string]itemInfo) string {
	return uc.resolveItem(ctx, req, cache).Name
}

// resolveItem resolve nome e categoria do alvo da solicitação. cache evita
// buscas repetidas em listagens; pode ser nil.
func (uc *UseCase) resolveItem(ctx context.Context, req *entity.PurchaseRequest, cache map[string]itemInfo) itemInfo {
	if req.Item.IsCustom() {
		return itemInfo{Name: req.Item.CustomName, Category: categoryOrDefault(req.Item.CustomCategory)}
	}
	if req.Item.ItemID == "" {
		// item excluído depois da aprovação: referência pendurada
		return itemInfo{Name: itemRemovedLabel}
	}
	if cache != nil {
		if info, ok := cache[req.Item.ItemID]; ok {
			return info
		}
	}
	info := itemInfo{Name: itemRemovedLabel}
	if item, err := uc.itemRepo.GetByID(ctx, req.Item.ItemID); err == nil && item != nil {
		info = itemInfo{Name: item.Name, Category: item.Category}
	}
	if cache != nil {
		cache[req.Item.ItemID] = info
	}
	return info
}

func (uc *UseCase) toResponse(ctx context.Context, req *entity.PurchaseRequest, cache map[string]itemInfo) *dto.RequestResponse {
	out := &dto.RequestResponse{
		ID:              req.ID,
		ItemID:          req.Item.ItemID,
		CustomItemName:  req.Item.CustomName,
		CustomCategory:  req.Item.CustomCategory,
		RequesterID:     req.RequesterID,
		RequesterName:   req.RequesterName,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Observation:     req.Observation,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		Date:            req.Date,
	}
	info := uc.resolveItem(ctx, req, cache)
	out.ItemName = info.Name
	out.ItemCategory = info.Category
	return out
}

// TotalValue valor total da solicitação (quantidade x preço unitário).
func TotalValue(req *entity.PurchaseRequest) decimal.Decimal {
	return req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
}
