package ports

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de banco, entregando
// repositórios amarrados a essa transação. Garante atomicidade para as
// operações que tocam solicitação e estoque juntas (aprovação com criação de
// item, marcação de compra, retirada): ou as duas metades entram, ou nenhuma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
		logRepo repository.SystemLogRepository,
	) error) error
}
