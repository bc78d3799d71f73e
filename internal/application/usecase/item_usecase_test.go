package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/stock"
)

var (
	admin = dto.Actor{ID: "u-adm", Name: "Admin Master", Role: entity.RoleAdmMaster}
	ti    = dto.Actor{ID: "u-ti", Name: "Técnica de TI", Role: entity.RoleTI}
	comum = dto.Actor{ID: "u-com", Name: "Solicitante", Role: entity.RoleComum}
)

func newItemUseCase() (*ItemUseCase, *stubItemRepo, *stubRequestRepo, *stubLogRepo) {
	itemRepo := newStubItemRepo()
	requestRepo := newStubRequestRepo()
	logRepo := &stubLogRepo{}
	runner := &stubTxRunner{itemRepo: itemRepo, requestRepo: requestRepo, logRepo: logRepo}
	return NewItemUseCase(runner, itemRepo, requestRepo), itemRepo, requestRepo, logRepo
}

func validItemInput() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Name:       "Toner HP 85A",
		SKU:        "ND-010",
		Category:   "Informática",
		CurrentQty: 8,
		MinQty:     3,
		Price:      decimal.RequireFromString("310.00"),
		Unit:       entity.UnitUN,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_StatusSaiDoLimiar(t *testing.T) {
	uc, _, _, logRepo := newItemUseCase()

	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusNormal, out.Status, "8 > 3 é Normal")
	assert.Equal(t, entity.ItemStatusNormal, out.DisplayStatus)

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, entity.LogNovoItem, logRepo.logs[0].Action)
	assert.Contains(t, logRepo.logs[0].Description, "Toner HP 85A")
}

func TestItemCreate_NasceCriticoNoLimiar(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	in := validItemInput()
	in.CurrentQty = 3 // igual ao mínimo conta como Crítico
	out, err := uc.Create(context.Background(), ti, in)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusCritico, out.Status)
}

func TestItemCreate_SKUDuplicado_Conflito(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	_, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)

	dup := validItemInput()
	dup.Name = "Outro toner"
	_, err = uc.Create(context.Background(), ti, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestItemCreate_Validacoes(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	cases := []struct {
		name   string
		mutate func(*dto.CreateItemRequest)
	}{
		{"sem nome", func(in *dto.CreateItemRequest) { in.Name = "" }},
		{"sem sku", func(in *dto.CreateItemRequest) { in.SKU = "" }},
		{"mínimo zero", func(in *dto.CreateItemRequest) { in.MinQty = 0 }},
		{"quantidade negativa", func(in *dto.CreateItemRequest) { in.CurrentQty = -1 }},
		{"preço negativo", func(in *dto.CreateItemRequest) { in.Price = decimal.RequireFromString("-1") }},
		{"unidade desconhecida", func(in *dto.CreateItemRequest) { in.Unit = "LT" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validItemInput()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), ti, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestItemCreate_ComumSemPermissao(t *testing.T) {
	uc, _, _, _ := newItemUseCase()
	_, err := uc.Create(context.Background(), comum, validItemInput())
	assert.ErrorIs(t, err, domain.ErrPermission)
}

// ──────────────────────────────────────────────────────────────────────────────
// Withdraw
// ──────────────────────────────────────────────────────────────────────────────

func TestWithdraw_DecrementaERecalculaStatus(t *testing.T) {
	uc, itemRepo, _, logRepo := newItemUseCase()
	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)

	res, err := uc.Withdraw(context.Background(), ti, out.ID, dto.WithdrawItemRequest{
		Quantity: 6,
		Reason:   "Troca de toner no 2º andar",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.CurrentQty)
	assert.Equal(t, entity.ItemStatusCritico, res.Status, "2 <= 3 vira Crítico")
	assert.Equal(t, 2, itemRepo.items[out.ID].CurrentQty)

	last := logRepo.logs[len(logRepo.logs)-1]
	assert.Equal(t, entity.LogSaidaEstoque, last.Action)
	assert.Contains(t, last.Description, "Motivo: Troca de toner no 2º andar")
}

func TestWithdraw_SaldoInsuficiente_NadaMuda(t *testing.T) {
	uc, itemRepo, _, logRepo := newItemUseCase()
	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)
	logsBefore := len(logRepo.logs)

	_, err = uc.Withdraw(context.Background(), ti, out.ID, dto.WithdrawItemRequest{
		Quantity: 9,
		Reason:   "Pedido maior que o saldo",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 8, itemRepo.items[out.ID].CurrentQty, "retirada recusada não altera o saldo")
	assert.Len(t, logRepo.logs, logsBefore, "retirada recusada não gera auditoria")
}

func TestWithdraw_Validacoes(t *testing.T) {
	uc, _, _, _ := newItemUseCase()
	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)

	_, err = uc.Withdraw(context.Background(), ti, out.ID, dto.WithdrawItemRequest{Quantity: 0, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Withdraw(context.Background(), ti, out.ID, dto.WithdrawItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation, "motivo é obrigatório")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_ParcialRecalculaStatus(t *testing.T) {
	uc, _, _, _ := newItemUseCase()
	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)

	newMin := 10
	res, err := uc.Update(context.Background(), ti, out.ID, dto.UpdateItemRequest{MinQty: &newMin})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusCritico, res.Status, "8 <= 10 vira Crítico")
	assert.Equal(t, "Toner HP 85A", res.Name, "campos não enviados ficam intactos")
}

func TestItemDelete_SoAdmin(t *testing.T) {
	uc, itemRepo, _, logRepo := newItemUseCase()
	out, err := uc.Create(context.Background(), ti, validItemInput())
	require.NoError(t, err)

	err = uc.Delete(context.Background(), ti, out.ID)
	assert.ErrorIs(t, err, domain.ErrPermission, "TI não exclui itens")

	err = uc.Delete(context.Background(), admin, out.ID)
	require.NoError(t, err)
	assert.Empty(t, itemRepo.items)

	last := logRepo.logs[len(logRepo.logs)-1]
	assert.Equal(t, entity.LogExclusaoItem, last.Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// Status de exibição derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestItemList_DerivaEmReposicao(t *testing.T) {
	uc, _, requestRepo, _ := newItemUseCase()

	critico, err := uc.Create(context.Background(), ti, dto.CreateItemRequest{
		Name: "Café", SKU: "ND-001", CurrentQty: 1, MinQty: 5, Unit: entity.UnitKG,
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), ti, dto.CreateItemRequest{
		Name: "Açúcar", SKU: "ND-002", CurrentQty: 50, MinQty: 5, Unit: entity.UnitKG,
	})
	require.NoError(t, err)

	// Solicitação APROVADO viva para o item crítico
	requestRepo.requests["r-1"] = &entity.PurchaseRequest{
		ID:     "r-1",
		Item:   entity.ItemRef{ItemID: critico.ID},
		Status: entity.RequestStatusAprovado,
	}

	out, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	byName := make(map[string]dto.ItemResponse)
	for _, item := range out.Items {
		byName[item.Name] = item
	}
	assert.Equal(t, stock.StatusEmReposicao, byName["Café"].DisplayStatus,
		"crítico com reposição aprovada exibe Em Reposição")
	assert.Equal(t, entity.ItemStatusCritico, byName["Café"].Status,
		"o status armazenado continua Crítico")
	assert.Equal(t, entity.ItemStatusNormal, byName["Açúcar"].DisplayStatus)

	// Sem aprovação viva o derivado volta a Crítico na mesma hora
	requestRepo.requests["r-1"].Status = entity.RequestStatusComprado
	out, err = uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	for _, item := range out.Items {
		if item.Name == "Café" {
			assert.Equal(t, entity.ItemStatusCritico, item.DisplayStatus)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardMetrics(t *testing.T) {
	requestRepo := newStubRequestRepo()
	for i := 0; i < 3; i++ {
		id := uuid.New().String()
		requestRepo.requests[id] = &entity.PurchaseRequest{
			ID: id, Status: entity.RequestStatusPendente,
			Item: entity.ItemRef{CustomName: "x"},
		}
	}
	metrics := &stubMetricsRepo{critical: 2, total: decimal.RequireFromString("1234.50")}

	uc := NewDashboardUseCase(metrics, requestRepo)
	out, err := uc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.CriticalItemsCount)
	assert.Equal(t, 3, out.PendingRequestsCount)
	assert.Equal(t, "1234.50", out.TotalStockValue.StringFixed(2))
}
