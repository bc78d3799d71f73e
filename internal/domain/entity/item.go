package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida aceitas.
const (
	UnitUN = "UN"
	UnitKG = "KG"
	UnitCX = "CX"
)

// Status armazenado de um item. "Em Reposição" nunca é persistido: é um
// status de exibição derivado das solicitações em andamento (ver pacote stock).
const (
	ItemStatusNormal  = "Normal"
	ItemStatusCritico = "Crítico"
)

// InventoryItem representa um item do estoque.
// Status é a linha de base armazenada, recalculada a cada escrita pela regra
// current_qty <= min_qty; o status exibido é derivado a cada leitura.
type InventoryItem struct {
	ID         string
	Name       string
	SKU        string // único
	Category   string
	CurrentQty int // >= 0
	MinQty     int // >= 1
	Price      decimal.Decimal
	Unit       string // UN, KG, CX
	Status     string // Normal, Crítico
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidUnit indica se unit é uma unidade de medida conhecida.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitUN, UnitKG, UnitCX:
		return true
	}
	return false
}
