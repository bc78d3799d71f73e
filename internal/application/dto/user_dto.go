package dto

// CreateUserRequest entrada para criar um usuário.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department"`
}

// UpdateUserRequest atualização parcial de usuário. IsActive=false desativa a
// conta (papel vira DESATIVADO); IsActive=true reativa com papel COMUM.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
}

// ResetPasswordRequest nova senha definida por um administrador.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse saída de um usuário. Nunca inclui o hash de senha.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	IsActive   bool   `json:"is_active"`
}

// UserListResponse lista de usuários.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
