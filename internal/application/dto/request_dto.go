package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRequestRequest entrada para abrir uma solicitação de compra.
// Exatamente um entre ItemID e CustomItemName deve vir preenchido.
type CreateRequestRequest struct {
	ItemID         string          `json:"item_id"`
	CustomItemName string          `json:"custom_item_name"`
	CustomCategory string          `json:"custom_category"`
	Quantity       int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Observation    string          `json:"observation"`
}

// UpdateRequestStatusRequest transição de status; Reason é obrigatório na
// rejeição e gravado como rejection_reason.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"rejection_reason"`
}

// RequestResponse saída de uma solicitação. ItemName resolve o nome atual do
// item vinculado ("item removido" quando a referência ficou pendurada).
// HighVolumeWarning é consultivo e só aparece na criação.
type RequestResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id,omitempty"`
	ItemName          string          `json:"item_name,omitempty"`
	ItemCategory      string          `json:"item_category,omitempty"`
	CustomItemName    string          `json:"custom_item_name,omitempty"`
	CustomCategory    string          `json:"custom_category,omitempty"`
	RequesterID       string          `json:"requester_id"`
	RequesterName     string          `json:"requester_name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Observation       string          `json:"observation,omitempty"`
	Status            string          `json:"status"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
	Date              time.Time       `json:"date"`
	HighVolumeWarning string          `json:"high_volume_warning,omitempty"`
}

// RequestListResponse lista paginada de solicitações.
type RequestListResponse struct {
	Items []RequestResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
