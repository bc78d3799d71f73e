package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementação da porta RequestRepository sobre PostgreSQL
// (usável com pool ou tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

const requestColumns = `id, item_id, custom_item_name, custom_category, requester_id, requester_name,
		quantity, unit_price, observation, status, rejection_reason, date`

// Create persiste uma nova solicitação.
func (r *RequestRepo) Create(ctx context.Context, req *entity.PurchaseRequest) error {
	query := `
		INSERT INTO requests (id, item_id, custom_item_name, custom_category, requester_id, requester_name,
			quantity, unit_price, observation, status, rejection_reason, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		req.ID, nullable(req.Item.ItemID), req.Item.CustomName, req.Item.CustomCategory,
		req.RequesterID, req.RequesterName, req.Quantity, req.UnitPrice,
		req.Observation, req.Status, req.RejectionReason, req.Date,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtém uma solicitação por ID; (nil, nil) quando não existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
}

// GetByIDForUpdate obtém a solicitação bloqueando a linha (SELECT FOR UPDATE).
func (r *RequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepo) get(ctx context.Context, query, id string) (*entity.PurchaseRequest, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*entity.PurchaseRequest, error) {
	var req entity.PurchaseRequest
	var itemID *string
	err := row.Scan(
		&req.ID, &itemID, &req.Item.CustomName, &req.Item.CustomCategory,
		&req.RequesterID, &req.RequesterName, &req.Quantity, &req.UnitPrice,
		&req.Observation, &req.Status, &req.RejectionReason, &req.Date,
	)
	if err != nil {
		return nil, err
	}
	if itemID != nil {
		req.Item.ItemID = *itemID
	}
	return &req, nil
}

// List lista solicitações, mais recentes primeiro.
func (r *RequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Update persiste status, vínculo de item e motivo de rejeição.
func (r *RequestRepo) Update(ctx context.Context, req *entity.PurchaseRequest) error {
	query := `
		UPDATE requests
		SET item_id = $2, custom_item_name = $3, custom_category = $4, status = $5, rejection_reason = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		req.ID, nullable(req.Item.ItemID), req.Item.CustomName, req.Item.CustomCategory,
		req.Status, req.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	return nil
}

// ApprovedItemIDs devolve os item_id com ao menos uma solicitação APROVADO.
// Insumo da derivação "Em Reposição", consultado a cada leitura.
func (r *RequestRepo) ApprovedItemIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT item_id FROM requests WHERE status = $1 AND item_id IS NOT NULL`,
		entity.RequestStatusAprovado,
	)
	if err != nil {
		return nil, fmt.Errorf("approved item ids: %w", err)
	}
	defer rows.Close()
	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan item id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CountByStatus conta solicitações por status.
func (r *RequestRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM requests WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}

// nullable converte string vazia em NULL para colunas com FK.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
