package usecase

import (
	"context"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/policy"
	"github.com/grupond/compras-api/internal/domain/repository"
)

// LogUseCase leitura da trilha de auditoria.
type LogUseCase struct {
	logRepo repository.SystemLogRepository
}

// NewLogUseCase constrói o caso de uso.
func NewLogUseCase(logRepo repository.SystemLogRepository) *LogUseCase {
	return &LogUseCase{logRepo: logRepo}
}

// List devolve as entradas mais recentes primeiro.
func (uc *LogUseCase) List(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.LogListResponse, error) {
	if !policy.Can(actor.Role, policy.ActionViewLogs) {
		return nil, domain.ErrPermission
	}
	page.DefaultPage()
	list, err := uc.logRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LogResponse{
			ID:             l.ID,
			Action:         l.Action,
			Description:    l.Description,
			UserName:       l.UserName,
			UserID:         l.UserID,
			PreviousStatus: l.PreviousStatus,
			Timestamp:      l.Timestamp,
		})
	}
	return &dto.LogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
