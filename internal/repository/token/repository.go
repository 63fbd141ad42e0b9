package token

import (
	"context"
	"time"
)

// Token is an opaque bearer credential bound to an identity email.
type Token struct {
	Token     string
	Email     string
	Kind      string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, value string) (*Token, error)
	Delete(ctx context.Context, value string) error
}
