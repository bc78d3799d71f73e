package dto

import "github.com/shopspring/decimal"

// DashboardMetricsResponse agregados do painel inicial.
type DashboardMetricsResponse struct {
	CriticalItemsCount   int             `json:"critical_items_count"`
	PendingRequestsCount int             `json:"pending_requests_count"`
	TotalStockValue      decimal.Decimal `json:"total_stock_value"`
}
