package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createUser(t *testing.T, email, dni string, role domain.UserRole) *domain.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), domain.UserInput{
		Nombre:   ptr("Ana"),
		Apellido: ptr("Pérez"),
		DNI:      ptr(dni),
		Email:    ptr(email),
		Role:     ptr(string(role)),
		Password: ptr("secreto1"),
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	user := f.createUser(t, "Ana@Club.test", "30111222", domain.Trainer)
	assert.Equal(t, "ana@club.test", user.Email)
	assert.NotEqual(t, "secreto1", user.PasswordHash)

	_, err := f.users.CreateUser(ctx, domain.UserInput{Nombre: ptr("B"), Apellido: ptr("C"), Email: ptr("b@club.test"), Role: ptr("admin"), Password: ptr("123")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.CreateUser(ctx, domain.UserInput{Nombre: ptr("B"), Apellido: ptr("C"), Email: ptr("b@club.test"), Role: ptr("alumnos"), Password: ptr("123456")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.CreateUser(ctx, domain.UserInput{Nombre: ptr("B"), Apellido: ptr("C"), Email: ptr("ana@club.test"), Role: ptr("admin"), Password: ptr("123456")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	trainers, err := f.users.ListTrainers(ctx)
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, user.ID, trainers[0].ID)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	user := f.createUser(t, "ana@club.test", "30111222", domain.Admin)

	byEmail, err := f.users.Login(ctx, "ANA@club.test", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byDNI, err := f.users.Login(ctx, "30111222", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byDNI.ID)

	_, err = f.users.Login(ctx, "ana@club.test", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.users.Login(ctx, "nadie@club.test", "secreto1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.users.Login(ctx, "", "secreto1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.setClock(func() time.Time { return now })
	f.createUser(t, "ana@club.test", "30111222", domain.Admin)

	reset, err := f.users.RequestPasswordReset(ctx, "ana@club.test", false)
	require.NoError(t, err)
	assert.False(t, reset.Emailed)
	assert.Len(t, reset.Token, 64)
	assert.True(t, reset.ExpiresAt.Equal(now.Add(time.Hour)))

	assert.ErrorIs(t, f.users.ConfirmPasswordReset(ctx, reset.Token, "123"), domain.ErrValidation)
	require.NoError(t, f.users.ConfirmPasswordReset(ctx, reset.Token, "nuevo-secreto"))

	// tokens are single use
	assert.ErrorIs(t, f.users.ConfirmPasswordReset(ctx, reset.Token, "otro-secreto"), domain.ErrValidation)

	_, err = f.users.Login(ctx, "ana@club.test", "nuevo-secreto")
	assert.NoError(t, err)
	_, err = f.users.Login(ctx, "ana@club.test", "secreto1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPasswordResetExpired(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.setClock(func() time.Time { return now })
	f.createUser(t, "ana@club.test", "30111222", domain.Admin)

	reset, err := f.users.RequestPasswordReset(ctx, "30111222", false)
	require.NoError(t, err)

	f.setClock(func() time.Time { return now.Add(time.Hour + time.Second) })
	assert.ErrorIs(t, f.users.ConfirmPasswordReset(ctx, reset.Token, "nuevo-secreto"), domain.ErrValidation)
	assert.ErrorIs(t, f.users.ConfirmPasswordReset(ctx, "unknown", "nuevo-secreto"), domain.ErrValidation)
}

func TestPasswordResetEmail(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	f.createUser(t, "ana@club.test", "30111222", domain.Admin)
	f.mailer.enabled = true

	reset, err := f.users.RequestPasswordReset(ctx, "ana@club.test", false)
	require.NoError(t, err)
	assert.True(t, reset.Emailed)
	require.Len(t, f.mailer.links, 1)
	assert.True(t, strings.HasPrefix(f.mailer.links[0], "https://club.test/reset-password?token="))
	assert.True(t, strings.HasSuffix(f.mailer.links[0], reset.Token))

	t.Run("dev mode skips the mailer", func(t *testing.T) {
		reset, err := f.users.RequestPasswordReset(ctx, "ana@club.test", true)
		require.NoError(t, err)
		assert.False(t, reset.Emailed)
		assert.Len(t, f.mailer.links, 1)
	})

	t.Run("send failure falls back to the token", func(t *testing.T) {
		f.mailer.err = errBoom
		reset, err := f.users.RequestPasswordReset(ctx, "ana@club.test", false)
		require.NoError(t, err)
		assert.False(t, reset.Emailed)
		assert.NotEmpty(t, reset.Token)
	})

	t.Run("slow relay times out", func(t *testing.T) {
		f.mailer.block = true
		f.users.mailTimeout = 20 * time.Millisecond
		reset, err := f.users.RequestPasswordReset(ctx, "ana@club.test", false)
		require.NoError(t, err)
		assert.False(t, reset.Emailed)
	})
}

func TestPasswordResetUnknownUser(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)

	_, err := f.users.RequestPasswordReset(context.Background(), "nadie@club.test", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	f.createUser(t, "ana@club.test", "30111222", domain.Admin)

	assert.ErrorIs(t, f.users.ChangePassword(ctx, "ana@club.test", "wrong-pass", "nuevo-secreto"), domain.ErrUnauthorized)
	assert.ErrorIs(t, f.users.ChangePassword(ctx, "ana@club.test", "secreto1", "123"), domain.ErrValidation)
	require.NoError(t, f.users.ChangePassword(ctx, "ana@club.test", "secreto1", "nuevo-secreto"))

	_, err := f.users.Login(ctx, "ana@club.test", "nuevo-secreto")
	assert.NoError(t, err)
}
