package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação da porta ItemRepository sobre PostgreSQL
// (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, sku, category, current_qty, min_qty, price, unit, status, created_at, updated_at`

// Create persiste um novo item. SKU duplicado vira ErrConflict.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, name, sku, category, current_qty, min_qty, price, unit, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Category, item.CurrentQty, item.MinQty,
		item.Price, item.Unit, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %s", domain.ErrConflict, item.SKU)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtém um item por ID; (nil, nil) quando não existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory WHERE id = $1`, id)
}

// GetByIDForUpdate obtém o item bloqueando a linha (SELECT FOR UPDATE).
// Só faz sentido dentro de uma transação.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtém um item pelo SKU único.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM inventory WHERE sku = $1`, sku)
}

func (r *ItemRepo) get(ctx context.Context, query string, arg any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&it.ID, &it.Name, &it.SKU, &it.Category, &it.CurrentQty, &it.MinQty,
		&it.Price, &it.Unit, &it.Status, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListSKUs devolve todos os SKUs com o prefixo dado (insumo do gerador).
func (r *ItemRepo) ListSKUs(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT sku FROM inventory WHERE sku LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()
	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// List lista itens com paginação, ordenados por nome.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.SKU, &it.Category, &it.CurrentQty, &it.MinQty,
			&it.Price, &it.Unit, &it.Status, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update atualiza um item.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = $2, category = $3, current_qty = $4, min_qty = $5, price = $6, unit = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.CurrentQty, item.MinQty,
		item.Price, item.Unit, item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete remove um item por ID. A FK de requests é ON DELETE SET NULL, então
// as solicitações sobrevivem com a referência pendurada.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
