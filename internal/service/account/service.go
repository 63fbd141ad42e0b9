// Package account handles professional-account signup, login, and the
// admin approval workflow.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"frituurgros/internal/domain"
	clientrepo "frituurgros/internal/repository/client"
	tokenrepo "frituurgros/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type adminLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// Service handles signup/login flows and account administration.
type Service struct {
	clients     clientrepo.Repository
	admins      adminLookup
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane token lifetimes.
func New(clients clientrepo.Repository, admins adminLookup, tokens tokenrepo.Repository, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 48 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &Service{
		clients:     clients,
		admins:      admins,
		tokens:      newTokenManager(tokens),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	VATNumber   string `json:"vatNumber"`
	Address     string `json:"address"`
}

// Signup registers a new professional account. Accounts start pending with
// no discount and no zone until an admin approves them.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.ClientAccount, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, errors.New("company name required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.clients.Create(ctx, domain.ClientAccount{
		Email:              email,
		PasswordHash:       string(hashed),
		CompanyName:        strings.TrimSpace(in.CompanyName),
		ContactName:        strings.TrimSpace(in.ContactName),
		Phone:              strings.TrimSpace(in.Phone),
		VATNumber:          strings.TrimSpace(in.VATNumber),
		Address:            strings.TrimSpace(in.Address),
		DiscountPercentage: decimal.Zero,
		Status:             domain.ClientPending,
	})
}

// Login validates credentials against the admin record first, then the
// client record, and returns issued access/refresh tokens bound to the
// email. Role classification is a separate step after login.
func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	hash, err := s.passwordHashFor(ctx, email)
	if err != nil {
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, email, "access", s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, email, "refresh", s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Logout invalidates the given token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// EmailForToken resolves a valid access token to the identity email.
func (s *Service) EmailForToken(ctx context.Context, token string) (string, error) {
	email, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return "", ErrInvalidToken
	}
	return email, nil
}

// GetByEmail returns the client account for an identity email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error) {
	return s.clients.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// List returns accounts filtered by status ("" means all).
func (s *Service) List(ctx context.Context, status string) ([]domain.ClientAccount, error) {
	return s.clients.List(ctx, status)
}

// Approve activates a pending or suspended account and grants its ordering
// terms: delivery zone and discount percentage.
func (s *Service) Approve(ctx context.Context, clientID string, zoneID *string, discount decimal.Decimal) (*domain.ClientAccount, error) {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("discount must be between 0 and 100")
	}
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ClientPending && c.Status != domain.ClientSuspended {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, c.Status, domain.ClientActive)
	}
	if err := s.clients.SetTerms(ctx, clientID, zoneID, discount); err != nil {
		return nil, err
	}
	if err := s.clients.SetStatus(ctx, clientID, domain.ClientActive); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, clientID)
}

// Suspend blocks an active account from ordering.
func (s *Service) Suspend(ctx context.Context, clientID string) error {
	return s.transition(ctx, clientID, domain.ClientSuspended, domain.ClientActive)
}

// Refuse rejects a pending application.
func (s *Service) Refuse(ctx context.Context, clientID string) error {
	return s.transition(ctx, clientID, domain.ClientRefused, domain.ClientPending)
}

// UpdateTerms changes an account's zone and discount without touching its
// status.
func (s *Service) UpdateTerms(ctx context.Context, clientID string, zoneID *string, discount decimal.Decimal) (*domain.ClientAccount, error) {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("discount must be between 0 and 100")
	}
	if err := s.clients.SetTerms(ctx, clientID, zoneID, discount); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, clientID)
}

func (s *Service) transition(ctx context.Context, clientID, next string, allowedFrom ...string) error {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	ok := false
	for _, from := range allowedFrom {
		if c.Status == from {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, c.Status, next)
	}
	return s.clients.SetStatus(ctx, clientID, next)
}

func (s *Service) passwordHashFor(ctx context.Context, email string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err == nil && admin.Active {
		return admin.PasswordHash, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return c.PasswordHash, nil
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
