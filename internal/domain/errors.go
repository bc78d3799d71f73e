package domain

import "errors"

// Erros de domínio (sem dependências externas). Cada operação devolve um
// destes sentinelas, possivelmente embrulhado com fmt.Errorf("...: %w", err),
// e a camada HTTP os traduz em códigos de status.
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("não autorizado")
	ErrPermission        = errors.New("acesso negado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInvalidTransition = errors.New("transição de status inválida")
)
