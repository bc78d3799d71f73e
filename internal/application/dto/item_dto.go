package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para cadastrar um item de estoque.
// Status não é aceito do cliente: é sempre recalculado pela regra de limiar.
type CreateItemRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=150"`
	SKU        string          `json:"sku" validate:"required,min=1,max=50"`
	Category   string          `json:"category"`
	CurrentQty int             `json:"current_qty" validate:"min=0"`
	MinQty     int             `json:"min_qty" validate:"min=1"`
	Price      decimal.Decimal `json:"price"`
	Unit       string          `json:"unit"`
}

// UpdateItemRequest atualização parcial de item; o status armazenado é
// recalculado a partir dos valores mesclados.
type UpdateItemRequest struct {
	Name       *string          `json:"name"`
	Category   *string          `json:"category"`
	CurrentQty *int             `json:"current_qty"`
	MinQty     *int             `json:"min_qty"`
	Price      *decimal.Decimal `json:"price"`
	Unit       *string          `json:"unit"`
}

// WithdrawItemRequest retirada de estoque com motivo auditável.
type WithdrawItemRequest struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"required"`
}

// ItemResponse saída de um item. Status é a linha de base armazenada;
// DisplayStatus é derivado a cada leitura (Normal, Crítico ou Em Reposição).
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	CurrentQty    int             `json:"current_qty"`
	MinQty        int             `json:"min_qty"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	Status        string          `json:"status"`
	DisplayStatus string          `json:"display_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de itens.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
