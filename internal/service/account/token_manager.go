package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	tokenrepo "frituurgros/internal/repository/token"
)

type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, email, kind string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 5; i++ {
		value, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Token:     value,
			Email:     email,
			Kind:      kind,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return value, nil
		}
		// Retry on the unlikely collision; give up on anything else.
		if i == 4 {
			return "", err
		}
	}
	return "", errors.New("token issue failed")
}

// Validate returns the email bound to a live access token.
func (m *tokenManager) Validate(ctx context.Context, value string) (string, bool) {
	t, err := m.repo.Get(ctx, value)
	if err != nil {
		return "", false
	}
	if t.Kind != "access" || time.Now().After(t.ExpiresAt) {
		return "", false
	}
	return t.Email, true
}

func (m *tokenManager) Revoke(ctx context.Context, value string) error {
	return m.repo.Delete(ctx, value)
}

func randomToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}
