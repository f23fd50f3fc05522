// Package auth implementa registro y login con bcrypt y JWT.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
	"github.com/jcastillo/AgroStock-api/pkg/config"
	"github.com/jcastillo/AgroStock-api/pkg/jwt"
)

// UseCase autenticación: registro público y login.
type UseCase struct {
	repo repository.UserRepository
	cfg  config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.UserRepository, cfg config.JWTConfig) *UseCase {
	return &UseCase{repo: repo, cfg: cfg}
}

// Register registra un usuario nuevo. El registro público siempre asigna rol
// operario; la promoción a supervisor o admin la hace un admin vía PUT
// /api/users/:id.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
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
		Role:         entity.RoleOperario,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login valida credenciales y emite el token JWT. Las credenciales
// incorrectas y los usuarios inactivos devuelven el mismo error para no
// revelar cuál de las dos cosas falló.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Name, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
