package domain

import "context"

type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type SessionUseCase interface {
	Login(ctx context.Context, clientID, email, name string) Identity
	Logout(ctx context.Context, clientID string)
	CurrentIdentity(ctx context.Context, clientID string) (*Identity, bool)
	IsAuthenticated(ctx context.Context, clientID string) bool
}

type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type AccountUseCase interface {
	Register(ctx context.Context, registration Registration) error
	AdminLogin(ctx context.Context, clientID, email, password string) (*Identity, error)
}
