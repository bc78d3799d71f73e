package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmMaster  = "ADM_MASTER"
	RoleGestor     = "GESTOR"
	RoleTI         = "TI"
	RoleComum      = "COMUM"
	RoleDesativado = "DESATIVADO" // sentinela de conta desativada, nunca atribuído manualmente
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro depois de persistir
	Role         string // ADM_MASTER, GESTOR, TI, COMUM, DESATIVADO
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica se role é um papel atribuível a uma conta ativa.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmMaster, RoleGestor, RoleTI, RoleComum:
		return true
	}
	return false
}

// Deactivate marca a conta como desativada: o papel vira o sentinela
// DESATIVADO e is_active cai para false.
func (u *User) Deactivate() {
	u.Role = RoleDesativado
	u.IsActive = false
}

// Activate reativa a conta com o papel ativo de menor privilégio.
func (u *User) Activate() {
	u.Role = RoleComum
	u.IsActive = true
}
