package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

type memUsers struct{ users []*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

const secret = "test-secret"

func newAuth(repo *memUsers) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterYLogin(t *testing.T) {
	repo := &memUsers{}
	uc := newAuth(repo)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "Ana@Mail.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", user.Email)
	assert.NotEqual(t, "12345678", repo.users[0].PasswordHash)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "12345678"})
	require.NoError(t, err)
	userID, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// login por username
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana", Password: "12345678"})
	assert.NoError(t, err)
}

func TestRegister_Duplicados(t *testing.T) {
	uc := newAuth(&memUsers{})
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@mail.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "otra", Email: "ana@mail.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "b@mail.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc := newAuth(&memUsers{})
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Email: "a@b.co", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_Errores(t *testing.T) {
	repo := &memUsers{}
	uc := newAuth(repo)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@mail.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mail.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.users[0].Status = entity.UserStatusDisabled
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
