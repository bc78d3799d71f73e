package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo agregados do painel, calculados direto no banco.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository constrói o adaptador.
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// CountCriticalItems conta itens com status armazenado Crítico.
func (r *MetricsRepo) CountCriticalItems(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory WHERE status = $1`, entity.ItemStatusCritico).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count critical items: %w", err)
	}
	return n, nil
}

// TotalStockValue soma price * current_qty de todo o estoque.
func (r *MetricsRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(price * current_qty), 0) FROM inventory`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock value: %w", err)
	}
	return total, nil
}
