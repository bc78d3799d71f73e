// Package policy centraliza a autorização por papel. Todas as operações de
// escrita consultam Can em vez de reimplementar a checagem em cada endpoint.
package policy

import "github.com/grupond/compras-api/internal/domain/entity"

// Action identifica uma operação sujeita a autorização.
type Action string

const (
	ActionCreateRequest Action = "request:create"
	ActionDecideRequest Action = "request:decide" // aprovar, rejeitar, marcar comprado
	ActionManageItems   Action = "item:manage"    // criar, editar, retirar
	ActionDeleteItem    Action = "item:delete"
	ActionManageUsers   Action = "user:manage"
	ActionViewLogs      Action = "log:view"
)

// allowed tabela papel → ações permitidas.
var allowed = map[string]map[Action]bool{
	entity.RoleAdmMaster: {
		ActionCreateRequest: true,
		ActionDecideRequest: true,
		ActionManageItems:   true,
		ActionDeleteItem:    true,
		ActionManageUsers:   true,
		ActionViewLogs:      true,
	},
	entity.RoleGestor: {
		ActionCreateRequest: true,
		ActionDecideRequest: true,
		ActionManageItems:   true,
		ActionViewLogs:      true,
	},
	entity.RoleTI: {
		ActionCreateRequest: true,
		ActionManageItems:   true,
		ActionViewLogs:      true,
	},
	entity.RoleComum: {
		ActionCreateRequest: true,
	},
}

// Can indica se o papel pode executar a ação. Contas DESATIVADO (ou papéis
// desconhecidos) não podem nada.
func Can(role string, action Action) bool {
	perms, ok := allowed[role]
	if !ok {
		return false
	}
	return perms[action]
}
