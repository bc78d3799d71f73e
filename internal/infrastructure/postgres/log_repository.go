package postgres

import (
	"context"
	"fmt"

	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*SystemLogRepo)(nil)

// SystemLogRepo trilha de auditoria sobre PostgreSQL (append-only).
type SystemLogRepo struct {
	q Querier
}

// NewSystemLogRepository constrói o adaptador.
func NewSystemLogRepository(q Querier) *SystemLogRepo {
	return &SystemLogRepo{q: q}
}

// Append insere um registro de auditoria.
func (r *SystemLogRepo) Append(ctx context.Context, log *entity.SystemLog) error {
	query := `
		INSERT INTO system_logs (id, action, description, user_name, user_id, previous_status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.Action, log.Description, log.UserName, log.UserID,
		log.PreviousStatus, log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert system log: %w", err)
	}
	return nil
}

// List lista registros, mais recentes primeiro.
func (r *SystemLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.SystemLog, error) {
	query := `
		SELECT id, action, description, user_name, user_id, previous_status, timestamp
		FROM system_logs ORDER BY timestamp DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list system logs: %w", err)
	}
	defer rows.Close()
	var logs []*entity.SystemLog
	for rows.Next() {
		var log entity.SystemLog
		err := rows.Scan(
			&log.ID, &log.Action, &log.Description, &log.UserName, &log.UserID,
			&log.PreviousStatus, &log.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan system log: %w", err)
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}
