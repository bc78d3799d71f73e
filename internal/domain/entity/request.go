package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida de uma solicitação de compra.
const (
	RequestStatusPendente  = "PENDENTE"
	RequestStatusAprovado  = "APROVADO"
	RequestStatusRejeitado = "REJEITADO"
	RequestStatusComprado  = "COMPRADO"
)

// transitions tabela do ciclo de vida: PENDENTE → APROVADO | REJEITADO,
// APROVADO → COMPRADO. REJEITADO e COMPRADO são terminais.
var transitions = map[string][]string{
	RequestStatusPendente: {RequestStatusAprovado, RequestStatusRejeitado},
	RequestStatusAprovado: {RequestStatusComprado},
}

// CanTransition indica se a mudança from → to é permitida pela máquina de
// estados. Não há saltos nem retrocessos.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidRequestStatus indica se s é um status conhecido do ciclo de vida.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPendente, RequestStatusAprovado, RequestStatusRejeitado, RequestStatusComprado:
		return true
	}
	return false
}

// ItemRef identifica o alvo de uma solicitação como variante etiquetada:
// ou um item já catalogado (ItemID) ou um item novo (CustomName/CustomCategory).
// Exatamente um dos lados deve estar preenchido; os dois ao mesmo tempo, ou
// nenhum, é um estado inválido que Valid() rejeita.
type ItemRef struct {
	ItemID         string
	CustomName     string
	CustomCategory string
}

// IsExisting indica referência a item já catalogado.
func (r ItemRef) IsExisting() bool { return r.ItemID != "" }

// IsCustom indica pedido de item ainda não catalogado.
func (r ItemRef) IsCustom() bool { return r.ItemID == "" && r.CustomName != "" }

// Valid exige exatamente um dos lados da variante.
func (r ItemRef) Valid() bool {
	if r.ItemID != "" {
		return r.CustomName == ""
	}
	return r.CustomName != ""
}

// PurchaseRequest representa uma solicitação de compra.
// RejectionReason só é preenchido quando Status == REJEITADO.
type PurchaseRequest struct {
	ID              string
	Item            ItemRef
	RequesterID     string
	RequesterName   string
	Quantity        int // > 0
	UnitPrice       decimal.Decimal
	Observation     string
	Status          string
	RejectionReason string
	Date            time.Time // data de criação
}
