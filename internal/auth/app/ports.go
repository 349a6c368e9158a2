package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/auth/domain"
)

type Gateway interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password string) (domain.Session, error)
}
