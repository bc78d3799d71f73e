// Package stock concentra as regras puras de estoque: status de linha de
// base, status exibido e geração sequencial de SKU.
package stock

import "github.com/grupond/compras-api/internal/domain/entity"

// StatusEmReposicao status exibido para item crítico com reposição aprovada
// em andamento. Nunca é armazenado.
const StatusEmReposicao = "Em Reposição"

// BaselineStatus recalcula o status armazenado de um item a partir das
// quantidades: Crítico quando current_qty <= min_qty, senão Normal.
// Aplicado em toda escrita de item.
func BaselineStatus(currentQty, minQty int) string {
	if currentQty <= minQty {
		return entity.ItemStatusCritico
	}
	return entity.ItemStatusNormal
}

// DisplayStatus deriva o status exibido de um item. Função pura do estado
// atual, recalculada a cada leitura:
//   - base Normal → Normal;
//   - base Crítico com ao menos uma solicitação APROVADO apontando para o
//     item → Em Reposição;
//   - base Crítico sem reposição em andamento → Crítico.
func DisplayStatus(baseline string, hasApprovedReplenishment bool) string {
	if baseline == entity.ItemStatusNormal {
		return entity.ItemStatusNormal
	}
	if hasApprovedReplenishment {
		return StatusEmReposicao
	}
	return entity.ItemStatusCritico
}

// HighVolume avalia a heurística consultiva de alto volume: o "estoque médio
// máximo" é aproximado como 3x o estoque mínimo e o alerta dispara quando o
// estoque projetado (atual + solicitado) passa de 200% dessa aproximação.
// Orientação de tela apenas; nunca bloqueia a operação.
func HighVolume(currentQty, minQty, requestedQty int) bool {
	maxAverageProxy := minQty * 3
	threshold := maxAverageProxy * 2
	return currentQty+requestedQty > threshold
}
