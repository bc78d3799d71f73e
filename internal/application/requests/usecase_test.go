package requests

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs em memória
// ──────────────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items map[string]*entity.InventoryItem
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (s *stubItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	s.items[item.ID] = item
	return nil
}

func (s *stubItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return s.items[id], nil
}

func (s *stubItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.GetByID(ctx, id)
}

func (s *stubItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	for _, item := range s.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubItemRepo) ListSKUs(_ context.Context, prefix string) ([]string, error) {
	var skus []string
	for _, item := range s.items {
		if strings.HasPrefix(item.SKU, prefix) {
			skus = append(skus, item.SKU)
		}
	}
	return skus, nil
}

func (s *stubItemRepo) List(_ context.Context, _, _ int) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range s.items {
		list = append(list, item)
	}
	return list, nil
}

func (s *stubItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	s.items[item.ID] = item
	return nil
}

func (s *stubItemRepo) Delete(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}

type stubRequestRepo struct {
	requests map[string]*entity.PurchaseRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*entity.PurchaseRequest)}
}

func (s *stubRequestRepo) Create(_ context.Context, req *entity.PurchaseRequest) error {
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *stubRequestRepo) GetByID(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (s *stubRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.GetByID(ctx, id)
}

func (s *stubRequestRepo) List(_ context.Context, _, _ int) ([]*entity.PurchaseRequest, error) {
	var list []*entity.PurchaseRequest
	for _, req := range s.requests {
		cp := *req
		list = append(list, &cp)
	}
	return list, nil
}

func (s *stubRequestRepo) Update(_ context.Context, req *entity.PurchaseRequest) error {
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *stubRequestRepo) ApprovedItemIDs(_ context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)
	for _, req := range s.requests {
		if req.Status == entity.RequestStatusAprovado && req.Item.ItemID != "" {
			ids[req.Item.ItemID] = true
		}
	}
	return ids, nil
}

func (s *stubRequestRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, req := range s.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

type stubLogRepo struct {
	logs []*entity.SystemLog
}

func (s *stubLogRepo) Append(_ context.Context, log *entity.SystemLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func (s *stubLogRepo) List(_ context.Context, _, _ int) ([]*entity.SystemLog, error) {
	return s.logs, nil
}

// stubTxRunner executa o callback diretamente sobre os stubs, sem transação.
type stubTxRunner struct {
	itemRepo    repository.ItemRepository
	requestRepo repository.RequestRepository
	logRepo     repository.SystemLogRepository
}

func (s *stubTxRunner) Run(_ context.Context, fn func(
	repository.ItemRepository,
	repository.RequestRepository,
	repository.SystemLogRepository,
) error) error {
	return fn(s.itemRepo, s.requestRepo, s.logRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	gestor = dto.Actor{ID: "u-1", Name: "Gestora", Role: entity.RoleGestor}
	comum  = dto.Actor{ID: "u-2", Name: "Solicitante", Role: entity.RoleComum}
)

func newTestUseCase(t *testing.T) (*UseCase, *stubItemRepo, *stubRequestRepo, *stubLogRepo) {
	t.Helper()
	itemRepo := newStubItemRepo()
	requestRepo := newStubRequestRepo()
	logRepo := &stubLogRepo{}
	runner := &stubTxRunner{itemRepo: itemRepo, requestRepo: requestRepo, logRepo: logRepo}
	return NewUseCase(runner, itemRepo, requestRepo, nil), itemRepo, requestRepo, logRepo
}

func seedItem(repo *stubItemRepo, qty, minQty int) *entity.InventoryItem {
	item := &entity.InventoryItem{
		ID:         "item-1",
		Name:       "Papel A4",
		SKU:        "ND-001",
		Category:   "Escritório",
		CurrentQty: qty,
		MinQty:     minQty,
		Price:      decimal.RequireFromString("25.90"),
		Unit:       entity.UnitUN,
		Status:     "Normal",
	}
	repo.items[item.ID] = item
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ItemExistente_NascePendenteComAuditoria(t *testing.T) {
	uc, itemRepo, _, logRepo := newTestUseCase(t)
	seedItem(itemRepo, 50, 5)

	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		ItemID:    "item-1",
		Quantity:  10,
		UnitPrice: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusPendente, out.Status)
	assert.Equal(t, "Papel A4", out.ItemName)
	assert.Empty(t, out.HighVolumeWarning, "10 unidades com mínimo 5 não é alto volume")

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, entity.LogNovaSolicitacao, logRepo.logs[0].Action)
	assert.Contains(t, logRepo.logs[0].Description, "10x Papel A4")
}

func TestCreate_AltoVolume_DevolveAviso(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	seedItem(itemRepo, 0, 5) // limiar: 2 x (3 x 5) = 30

	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		ItemID:    "item-1",
		Quantity:  31,
		UnitPrice: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, highVolumeMessage, out.HighVolumeWarning)
}

func TestCreate_ItemAvulso_GuardaNomeECategoria(t *testing.T) {
	uc, _, requestRepo, _ := newTestUseCase(t)

	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		CustomItemName: "Suporte de monitor",
		CustomCategory: "Escritório",
		Quantity:       2,
		UnitPrice:      decimal.RequireFromString("120.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Suporte de monitor", out.ItemName)
	assert.Empty(t, out.ItemID)

	stored := requestRepo.requests[out.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.Item.IsCustom())
}

func TestCreate_Validacoes(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	seedItem(itemRepo, 10, 5)

	cases := []struct {
		name string
		in   dto.CreateRequestRequest
		want error
	}{
		{"quantidade zero", dto.CreateRequestRequest{ItemID: "item-1", Quantity: 0}, domain.ErrValidation},
		{"preço negativo", dto.CreateRequestRequest{ItemID: "item-1", Quantity: 1, UnitPrice: decimal.RequireFromString("-1")}, domain.ErrValidation},
		{"sem alvo", dto.CreateRequestRequest{Quantity: 1}, domain.ErrValidation},
		{"ambos os alvos", dto.CreateRequestRequest{ItemID: "item-1", CustomItemName: "X", Quantity: 1}, domain.ErrValidation},
		{"item inexistente", dto.CreateRequestRequest{ItemID: "nope", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), comum, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreate_PapelDesativado_SemPermissao(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	seedItem(itemRepo, 10, 5)

	desativado := dto.Actor{ID: "u-9", Name: "Ex-funcionário", Role: entity.RoleDesativado}
	_, err := uc.Create(context.Background(), desativado, dto.CreateRequestRequest{
		ItemID: "item-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrPermission)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — aprovação
// ──────────────────────────────────────────────────────────────────────────────

func createCustomRequest(t *testing.T, uc *UseCase) string {
	t.Helper()
	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		CustomItemName: "Cadeira ergonômica",
		CustomCategory: "Mobiliário",
		Quantity:       3,
		UnitPrice:      decimal.RequireFromString("899.90"),
	})
	require.NoError(t, err)
	return out.ID
}

func TestUpdateStatus_AprovarItemAvulso_ProvisionaExatamenteUmItem(t *testing.T) {
	uc, itemRepo, requestRepo, _ := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	out, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusAprovado, out.Status)

	require.Len(t, itemRepo.items, 1, "a aprovação provisiona exatamente um item")
	var item *entity.InventoryItem
	for _, it := range itemRepo.items {
		item = it
	}
	assert.Equal(t, "Cadeira ergonômica", item.Name)
	assert.Equal(t, "ND-001", item.SKU)
	assert.Equal(t, "Mobiliário", item.Category)
	assert.Equal(t, 0, item.CurrentQty)
	assert.Equal(t, 5, item.MinQty)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("899.90")))
	assert.Equal(t, entity.ItemStatusCritico, item.Status)

	// A solicitação passa a referenciar o item catalogado
	stored := requestRepo.requests[id]
	assert.Equal(t, item.ID, stored.Item.ItemID)
	assert.Empty(t, stored.Item.CustomName)
}

func TestUpdateStatus_AprovarDuasVezes_Rejeitado(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	_, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, itemRepo.items, 1, "reaprovar não pode provisionar outro item")
}

func TestUpdateStatus_SKUsSequenciais(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	seedItem(itemRepo, 10, 5) // ocupa ND-001

	id := createCustomRequest(t, uc)
	_, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	require.NoError(t, err)

	skus, _ := itemRepo.ListSKUs(context.Background(), "ND-")
	assert.ElementsMatch(t, []string{"ND-001", "ND-002"}, skus)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — compra
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_Comprado_SomaEstoqueUmaVez(t *testing.T) {
	uc, itemRepo, _, _ := newTestUseCase(t)
	item := seedItem(itemRepo, 2, 5) // Crítico: 2 <= 5

	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		ItemID: item.ID, Quantity: 10, UnitPrice: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), gestor, out.ID, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, itemRepo.items[item.ID].CurrentQty, "aprovar não mexe no estoque")

	_, err = uc.UpdateStatus(context.Background(), gestor, out.ID, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusComprado,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, itemRepo.items[item.ID].CurrentQty)
	assert.Equal(t, entity.ItemStatusNormal, itemRepo.items[item.ID].Status, "12 > 5 recalcula para Normal")

	// COMPRADO é terminal: repetir não soma de novo
	_, err = uc.UpdateStatus(context.Background(), gestor, out.ID, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusComprado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 12, itemRepo.items[item.ID].CurrentQty)
}

func TestUpdateStatus_CompradoComItemExcluido_NaoFalha(t *testing.T) {
	uc, itemRepo, requestRepo, _ := newTestUseCase(t)
	item := seedItem(itemRepo, 2, 5)

	out, err := uc.Create(context.Background(), comum, dto.CreateRequestRequest{
		ItemID: item.ID, Quantity: 10, UnitPrice: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), gestor, out.ID, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	require.NoError(t, err)

	// Item excluído entre a aprovação e a compra: referência pendurada
	require.NoError(t, itemRepo.Delete(context.Background(), item.ID))
	stored := requestRepo.requests[out.ID]
	stored.Item.ItemID = ""

	res, err := uc.UpdateStatus(context.Background(), gestor, out.ID, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusComprado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusComprado, res.Status)
	assert.Equal(t, itemRemovedLabel, res.ItemName)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — rejeição e permissões
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_RejeitarSemMotivo_Invalido(t *testing.T) {
	uc, _, requestRepo, _ := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	_, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusRejeitado,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, entity.RequestStatusPendente, requestRepo.requests[id].Status,
		"rejeição inválida não pode mudar o status")
}

func TestUpdateStatus_RejeitarComMotivo(t *testing.T) {
	uc, _, requestRepo, logRepo := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	out, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusRejeitado,
		Reason: "Orçamento esgotado no trimestre",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejeitado, out.Status)
	assert.Equal(t, "Orçamento esgotado no trimestre", out.RejectionReason)
	assert.Equal(t, "Orçamento esgotado no trimestre", requestRepo.requests[id].RejectionReason)

	last := logRepo.logs[len(logRepo.logs)-1]
	assert.Equal(t, entity.LogAtualizacaoPedido, last.Action)
	assert.Equal(t, entity.RequestStatusPendente, last.PreviousStatus)
	assert.Contains(t, last.Description, "Motivo: Orçamento esgotado no trimestre")
}

func TestUpdateStatus_ComumNaoDecide(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	_, err := uc.UpdateStatus(context.Background(), comum, id, dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	assert.ErrorIs(t, err, domain.ErrPermission)
}

func TestUpdateStatus_StatusDesconhecido(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	id := createCustomRequest(t, uc)

	_, err := uc.UpdateStatus(context.Background(), gestor, id, dto.UpdateRequestStatusRequest{
		Status: "EM_ANALISE",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_SolicitacaoInexistente(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.UpdateStatus(context.Background(), gestor, "nope", dto.UpdateRequestStatusRequest{
		Status: entity.RequestStatusAprovado,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valor total
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalValue(t *testing.T) {
	req := &entity.PurchaseRequest{
		Quantity:  10,
		UnitPrice: decimal.RequireFromString("5.00"),
	}
	assert.Equal(t, "50.00", TotalValue(req).StringFixed(2))
}
