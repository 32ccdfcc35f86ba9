package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type memUserRepo struct {
	nextID  uint
	byEmail map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user

	return user, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, domain.User{
		Email:    "gopher@example.com",
		Password: "secret1234",
		Name:     "Gopher",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "secret1234", repo.byEmail["gopher@example.com"].Password, "password must be hashed")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Signup(ctx, domain.User{Email: "gopher@example.com", Password: "other5678"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("login with the right password", func(t *testing.T) {
		user, err := svc.Login(ctx, "gopher@example.com", "secret1234")

		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "gopher@example.com", "not-the-password")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret1234")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
