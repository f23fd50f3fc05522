package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (alta, edición de rol/estado,
// listado). El login vive en el paquete auth.
type UserUseCase struct {
	repo     repository.UserRepository
	recorder *audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, recorder *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder}
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperario:
		return true
	}
	return false
}

// Create crea un usuario. Email y password son obligatorios; un email ya
// registrado devuelve ErrEmailAlreadyExists sin escribir nada.
func (uc *UserUseCase) Create(actor audit.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = entity.RoleOperario
	}
	if !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "user", entity.ActivityActionCreate, user.ID, user.Name,
		fmt.Sprintf("usuario %s creado con rol %s", user.Email, user.Role), nil)
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update actualiza nombre, rol o estado de un usuario.
func (uc *UserUseCase) Update(actor audit.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "user", entity.ActivityActionUpdate, user.ID, user.Name,
		fmt.Sprintf("usuario %s actualizado", user.Email), nil)
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
