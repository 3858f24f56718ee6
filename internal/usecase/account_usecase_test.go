package usecase

import (
	"context"
	"testing"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountUseCase_Register(t *testing.T) {
	sessions := NewSessionUseCase(repository.NewMemoryKeyValueStorage(), quietLogger())
	uc, err := NewAccountUseCase(sessions, "admin@gabinork.com", "admin123", quietLogger())
	require.NoError(t, err)

	valid := domain.Registration{Name: "Ada Obi", Email: "ada@example.com", Password: "Secret123", ConfirmPassword: "Secret123"}
	assert.NoError(t, uc.Register(context.Background(), valid))

	tests := []struct {
		name    string
		mutate  func(r *domain.Registration)
		message string
	}{
		{"blank name", func(r *domain.Registration) { r.Name = " " }, "name cannot be empty"},
		{"bad email", func(r *domain.Registration) { r.Email = "ada@" }, "invalid email format"},
		{"mismatch", func(r *domain.Registration) { r.ConfirmPassword = "Secret124" }, "passwords do not match"},
		{"short", func(r *domain.Registration) { r.Password, r.ConfirmPassword = "Sh0rt", "Sh0rt" }, "at least 8 characters"},
		{"no upper", func(r *domain.Registration) { r.Password, r.ConfirmPassword = "secret123", "secret123" }, "uppercase"},
		{"no digit", func(r *domain.Registration) { r.Password, r.ConfirmPassword = "SecretPass", "SecretPass" }, "digit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)
			err := uc.Register(context.Background(), reg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid registration")
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAccountUseCase_AdminLogin(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionUseCase(repository.NewMemoryKeyValueStorage(), quietLogger())
	uc, err := NewAccountUseCase(sessions, "admin@gabinork.com", "admin123", quietLogger())
	require.NoError(t, err)

	_, err = uc.AdminLogin(ctx, "c1", "admin@gabinork.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.AdminLogin(ctx, "c1", "someone@gabinork.com", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, sessions.IsAuthenticated(ctx, "c1"))

	identity, err := uc.AdminLogin(ctx, "c1", " Admin@GabiNork.com ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, AdminDisplayName, identity.Name)
	assert.True(t, sessions.IsAuthenticated(ctx, "c1"))
}
