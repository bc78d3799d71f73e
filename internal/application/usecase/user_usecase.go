package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/domain"
	"github.com/grupond/compras-api/internal/domain/entity"
	"github.com/grupond/compras-api/internal/domain/policy"
	"github.com/grupond/compras-api/internal/domain/repository"
)

// UserUseCase administração de contas: criação, atualização parcial,
// desativação/reativação, redefinição de senha e remoção.
type UserUseCase struct {
	userRepo repository.UserRepository
	logRepo  repository.SystemLogRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, logRepo repository.SystemLogRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, logRepo: logRepo}
}

// Create cria um usuário ativo com senha em bcrypt. Email duplicado responde
// ErrConflict; DESATIVADO não é papel atribuível.
func (uc *UserUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !policy.Can(actor.Role, policy.ActionManageUsers) {
		return nil, domain.ErrPermission
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email e password são obrigatórios", domain.ErrValidation)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: papel inválido %q", domain.ErrValidation, in.Role)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s já cadastrado", domain.ErrConflict, in.Email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Department:   in.Department,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.appendLog(ctx, actor, entity.LogNovoUsuario, fmt.Sprintf("Criou o usuário %s (%s)", user.Name, user.Role), "")
	out := toUserResponse(user)
	return &out, nil
}

// Update atualização parcial {name, role, department, is_active}.
// is_active=false desativa (papel vira o sentinela DESATIVADO);
// is_active=true reativa com o papel ativo de menor privilégio (COMUM).
func (uc *UserUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !policy.Can(actor.Role, policy.ActionManageUsers) {
		return nil, domain.ErrPermission
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuário %s", domain.ErrNotFound, id)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: papel inválido %q", domain.ErrValidation, *in.Role)
		}
		user.Role = *in.Role
	}

	var logAction, logDescription string
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		if *in.IsActive {
			user.Activate()
			logAction = entity.LogUsuarioReativado
			logDescription = fmt.Sprintf("Reativou o usuário %s", user.Name)
		} else {
			user.Deactivate()
			logAction = entity.LogUsuarioDesativado
			logDescription = fmt.Sprintf("Desativou o usuário %s", user.Name)
		}
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if logAction != "" {
		uc.appendLog(ctx, actor, logAction, logDescription, "")
	}
	out := toUserResponse(user)
	return &out, nil
}

// ResetPassword define uma nova senha (apenas administração).
func (uc *UserUseCase) ResetPassword(ctx context.Context, actor dto.Actor, id string, in dto.ResetPasswordRequest) error {
	if !policy.Can(actor.Role, policy.ActionManageUsers) {
		return domain.ErrPermission
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: senha deve ter ao menos 6 caracteres", domain.ErrValidation)
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuário %s", domain.ErrNotFound, id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.appendLog(ctx, actor, entity.LogRedefinicaoSenha, fmt.Sprintf("Redefiniu a senha do usuário %s", user.Name), "")
	return nil
}

// Delete remove um usuário.
func (uc *UserUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if !policy.Can(actor.Role, policy.ActionManageUsers) {
		return domain.ErrPermission
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuário %s", domain.ErrNotFound, id)
	}
	return uc.userRepo.Delete(ctx, id)
}

// List lista usuários, nunca expondo o hash de senha.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UserUseCase) appendLog(ctx context.Context, actor dto.Actor, action, description, previousStatus string) {
	// Falha de auditoria em operação de usuário não desfaz a operação em si;
	// o repositório loga o erro.
	_ = uc.logRepo.Append(ctx, &entity.SystemLog{
		ID:             uuid.New().String(),
		Action:         action,
		Description:    description,
		UserName:       actor.Name,
		UserID:         actor.ID,
		PreviousStatus: previousStatus,
		Timestamp:      time.Now(),
	})
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		IsActive:   u.IsActive,
	}
}
