package service

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
)

// AuthService handles account registration and password sign-in.
type AuthService interface {
	// Register creates an account. An email that is already registered yields
	// ErrUserExists and nothing is written.
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// SignIn checks credentials. Unknown email and wrong password are
	// indistinguishable to the caller.
	SignIn(ctx context.Context, email, password string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}
