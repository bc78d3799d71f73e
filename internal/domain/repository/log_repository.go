package repository

import (
	"context"

	"github.com/grupond/compras-api/internal/domain/entity"
)

// SystemLogRepository define a porta da trilha de auditoria: só inserção e
// leitura, nunca atualização ou remoção.
type SystemLogRepository interface {
	Append(ctx context.Context, log *entity.SystemLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.SystemLog, error)
}
