package usecase

import (
	"context"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

// DashboardUseCase agregados do painel: itens críticos, solicitações
// pendentes e valor total em estoque.
type DashboardUseCase struct {
	metricsRepo repository.MetricsRepository
	requestRepo repository.RequestRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(metricsRepo repository.MetricsRepository, requestRepo repository.RequestRepository) *DashboardUseCase {
	return &DashboardUseCase{metricsRepo: metricsRepo, requestRepo: requestRepo}
}

// Metrics calcula os agregados no banco a cada chamada.
func (uc *DashboardUseCase) Metrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	critical, err := uc.metricsRepo.CountCriticalItems(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uc.requestRepo.CountByStatus(ctx, entity.RequestStatusPendente)
	if err != nil {
		return nil, err
	}
	totalValue, err := uc.metricsRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardMetricsResponse{
		CriticalItemsCount:   critical,
		PendingRequestsCount: pending,
		TotalStockValue:      totalValue,
	}, nil
}
