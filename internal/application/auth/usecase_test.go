package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo/AgroStock-api/internal/application/auth"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/pkg/config"
	pkgjwt "github.com/jcastillo/AgroStock-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byEmail {
		out = append(out, u)
	}
	return out, nil
}

var testJWT = config.JWTConfig{Secret: "secret-de-test", Expiration: 60, Issuer: "agrostock-test"}

func TestRegisterYLogin_EmiteTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "Maria@Campo.com",
		Password: "secreta123",
		Name:     "María González",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@campo.com", user.Email, "el email debe normalizarse a minúsculas")
	assert.Equal(t, "operario", user.Role, "el registro público siempre asigna operario")

	out, err := uc.Login(dto.LoginRequest{Email: "maria@campo.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, name, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "María González", name)
	assert.Equal(t, "operario", role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@campo.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "maria@campo.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SinEmailOPassword(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@campo.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "maria@campo.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@campo.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)

	_, err := uc.Register(dto.RegisterRequest{Email: "maria@campo.com", Password: "secreta123"})
	require.NoError(t, err)
	repo.byEmail["maria@campo.com"].Status = entity.UserStatusInactive

	_, err = uc.Login(dto.LoginRequest{Email: "maria@campo.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"un usuario inactivo debe recibir el mismo error que credenciales malas")
}
