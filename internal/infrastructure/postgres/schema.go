package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/pkg/config"
)

const (
	connectAttempts = 10
	connectBackoff  = 5 * time.Second
)

// NewPoolWithRetry tenta conectar ao banco repetidamente: o Postgres pode
// ainda estar subindo quando a API inicia (docker-compose).
func NewPoolWithRetry(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("tentativa", attempt).Msg("banco indisponível, aguardando")
		select {
		case <-time.After(connectBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("conectar ao banco após %d tentativas: %w", connectAttempts, lastErr)
}

// schemaDDL cria as tabelas quando ainda não existem. requests.item_id usa
// ON DELETE SET NULL: excluir um item do catálogo preserva o histórico de
// solicitações, que passa a exibir "item removido".
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	department TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS inventory (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	sku TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT '',
	current_qty INTEGER NOT NULL DEFAULT 0,
	min_qty INTEGER NOT NULL DEFAULT 1,
	price NUMERIC(14,2) NOT NULL DEFAULT 0,
	unit TEXT NOT NULL DEFAULT 'UN',
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS requests (
	id UUID PRIMARY KEY,
	item_id UUID REFERENCES inventory(id) ON DELETE SET NULL,
	custom_item_name TEXT NOT NULL DEFAULT '',
	custom_category TEXT NOT NULL DEFAULT '',
	requester_id UUID NOT NULL,
	requester_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price NUMERIC(14,2) NOT NULL,
	observation TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	rejection_reason TEXT NOT NULL DEFAULT '',
	date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS system_logs (
	id UUID PRIMARY KEY,
	action TEXT NOT NULL,
	description TEXT NOT NULL,
	user_name TEXT NOT NULL,
	user_id UUID NOT NULL,
	previous_status TEXT NOT NULL DEFAULT '',
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_requests_status ON requests (status);
CREATE INDEX IF NOT EXISTS idx_requests_item ON requests (item_id);
CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON system_logs (timestamp DESC);
`

// EnsureSchema aplica o DDL idempotente na inicialização.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin cria o administrador padrão quando o banco está vazio,
// para que a primeira autenticação seja possível.
func EnsureDefaultAdmin(ctx context.Context, pool *pgxpool.Pool, password string) error {
	users := NewUserRepository(pool)
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash da senha padrão: %w", err)
	}
	now := time.Now().UTC()
	admin := &entity.User{
		ID:           uuid.NewString(),
		Name:         "Admin Master",
		Email:        "admin@grupond.com.br",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmMaster,
		Department:   "TI",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("criar admin padrão: %w", err)
	}
	log.Info().Str("email", admin.Email).Msg("admin padrão criado")
	return nil
}
