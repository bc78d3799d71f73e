package requests

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/entity"
)

// PDFGenerator porta de saída para o documento de pedido de compra.
// itemName chega resolvido ("item removido" quando a referência pendurou).
type PDFGenerator interface {
	GenerateRequestPDF(ctx context.Context, req *entity.PurchaseRequest, itemName string) ([]byte, error)
}
