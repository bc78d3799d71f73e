package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// MetricsRepository agregados do painel, calculados no banco.
type MetricsRepository interface {
	CountCriticalItems(ctx context.Context) (int, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}
