package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

// Stubs em memória compartilhados pelos testes do pacote.

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
	s.requests[req.ID] = req
	return nil
}

func (s *stubRequestRepo) GetByID(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.requests[id], nil
}

func (s *stubRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.GetByID(ctx, id)
}

func (s *stubRequestRepo) List(_ context.Context, _, _ int) ([]*entity.PurchaseRequest, error) {
	var list []*entity.PurchaseRequest
	for _, req := range s.requests {
		list = append(list, req)
	}
	return list, nil
}

func (s *stubRequestRepo) Update(_ context.Context, req *entity.PurchaseRequest) error {
	s.requests[req.ID] = req
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

type stubUserRepo struct {
	users map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range s.users {
		list = append(list, u)
	}
	return list, nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func (s *stubUserRepo) Count(_ context.Context) (int, error) {
	return len(s.users), nil
}

type stubMetricsRepo struct {
	critical int
	total    decimal.Decimal
}

func (s *stubMetricsRepo) CountCriticalItems(_ context.Context) (int, error) {
	return s.critical, nil
}

func (s *stubMetricsRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	return s.total, nil
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
