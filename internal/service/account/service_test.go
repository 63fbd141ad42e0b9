package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"frituurgros/internal/domain"
	tokenrepo "frituurgros/internal/repository/token"
)

type stubClients struct {
	created    *domain.ClientAccount
	createErr  error
	byEmail    *domain.ClientAccount
	byID       *domain.ClientAccount
	lastStatus string
	lastZone   *string
	lastDisc   decimal.Decimal
}

func (s *stubClients) Create(_ context.Context, c domain.ClientAccount) (*domain.ClientAccount, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	c.ID = "c1"
	s.created = &c
	return &c, nil
}

func (s *stubClients) GetByEmail(context.Context, string) (*domain.ClientAccount, error) {
	if s.byEmail == nil {
		return nil, domain.ErrNotFound
	}
	return s.byEmail, nil
}

func (s *stubClients) GetByID(context.Context, string) (*domain.ClientAccount, error) {
	if s.byID == nil {
		return nil, domain.ErrNotFound
	}
	return s.byID, nil
}

func (s *stubClients) List(context.Context, string) ([]domain.ClientAccount, error) {
	return nil, nil
}

func (s *stubClients) SetStatus(_ context.Context, _, status string) error {
	s.lastStatus = status
	if s.byID != nil {
		s.byID.Status = status
	}
	return nil
}

func (s *stubClients) SetTerms(_ context.Context, _ string, zoneID *string, discount decimal.Decimal) error {
	s.lastZone = zoneID
	s.lastDisc = discount
	return nil
}

type stubAdmins struct {
	admin *domain.Admin
}

func (s *stubAdmins) GetByEmail(context.Context, string) (*domain.Admin, error) {
	if s.admin == nil {
		return nil, domain.ErrNotFound
	}
	return s.admin, nil
}

type memTokens struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: make(map[string]tokenrepo.Token)}
}

func (m *memTokens) Create(_ context.Context, t tokenrepo.Token) error {
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokens) Get(_ context.Context, value string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[value]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokens) Delete(_ context.Context, value string) error {
	delete(m.tokens, value)
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func newService(clients *stubClients, admins *stubAdmins) *Service {
	return New(clients, admins, newMemTokens(), time.Hour, time.Hour)
}

func TestSignupStartsPending(t *testing.T) {
	clients := &stubClients{}
	svc := newService(clients, &stubAdmins{})

	c, err := svc.Signup(context.Background(), SignupInput{
		Email:       "Frituur.Marcel@Example.BE ",
		Password:    "Frietjes123",
		CompanyName: "Frituur Marcel",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if c.Status != domain.ClientPending {
		t.Fatalf("status = %s, want pending", c.Status)
	}
	if c.Email != "frituur.marcel@example.be" {
		t.Fatalf("email not normalized: %q", c.Email)
	}
	if !c.DiscountPercentage.IsZero() || c.ZoneID != nil {
		t.Fatalf("new account should have no terms yet: %+v", c)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newService(&stubClients{}, &stubAdmins{})

	if _, err := svc.Signup(context.Background(), SignupInput{Password: "Frietjes123", CompanyName: "x"}); err == nil {
		t.Fatal("expected email validation error")
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.be", Password: "Frietjes123"}); err == nil {
		t.Fatal("expected company validation error")
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.be", Password: "short", CompanyName: "x"}); err == nil {
		t.Fatal("expected password length error")
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.be", Password: "alllowercase1", CompanyName: "x"}); err == nil {
		t.Fatal("expected password complexity error")
	}
}

func TestLoginClient(t *testing.T) {
	clients := &stubClients{byEmail: &domain.ClientAccount{Email: "a@b.be", PasswordHash: hash(t, "Frietjes123")}}
	svc := newService(clients, &stubAdmins{})

	access, refresh, err := svc.Login(context.Background(), "a@b.be", "Frietjes123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected tokens %q %q", access, refresh)
	}

	email, err := svc.EmailForToken(context.Background(), access)
	if err != nil || email != "a@b.be" {
		t.Fatalf("EmailForToken = %q, %v", email, err)
	}

	// Refresh tokens do not authenticate requests.
	if _, err := svc.EmailForToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	admins := &stubAdmins{admin: &domain.Admin{Email: "boss@b.be", PasswordHash: hash(t, "Baas12345"), Active: true}}
	svc := newService(&stubClients{}, admins)

	if _, _, err := svc.Login(context.Background(), "boss@b.be", "Baas12345"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	clients := &stubClients{byEmail: &domain.ClientAccount{PasswordHash: hash(t, "Frietjes123")}}
	svc := newService(clients, &stubAdmins{})

	if _, _, err := svc.Login(context.Background(), "a@b.be", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	svc = newService(&stubClients{}, &stubAdmins{})
	if _, _, err := svc.Login(context.Background(), "nobody@b.be", "Frietjes123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	clients := &stubClients{byEmail: &domain.ClientAccount{Email: "a@b.be", PasswordHash: hash(t, "Frietjes123")}}
	svc := newService(clients, &stubAdmins{})

	access, _, err := svc.Login(context.Background(), "a@b.be", "Frietjes123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.EmailForToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestApproveAssignsTerms(t *testing.T) {
	zoneID := "z1"
	clients := &stubClients{byID: &domain.ClientAccount{ID: "c1", Status: domain.ClientPending}}
	svc := newService(clients, &stubAdmins{})

	c, err := svc.Approve(context.Background(), "c1", &zoneID, decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if c.Status != domain.ClientActive {
		t.Fatalf("status = %s, want active", c.Status)
	}
	if clients.lastZone == nil || *clients.lastZone != "z1" || !clients.lastDisc.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("terms not applied: zone=%v discount=%s", clients.lastZone, clients.lastDisc)
	}
}

func TestApproveRejectsActiveAccount(t *testing.T) {
	clients := &stubClients{byID: &domain.ClientAccount{ID: "c1", Status: domain.ClientActive}}
	svc := newService(clients, &stubAdmins{})

	if _, err := svc.Approve(context.Background(), "c1", nil, decimal.Zero); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestApproveValidatesDiscount(t *testing.T) {
	svc := newService(&stubClients{}, &stubAdmins{})
	if _, err := svc.Approve(context.Background(), "c1", nil, decimal.NewFromInt(101)); err == nil {
		t.Fatal("expected discount range error")
	}
	if _, err := svc.Approve(context.Background(), "c1", nil, decimal.NewFromInt(-1)); err == nil {
		t.Fatal("expected discount range error")
	}
}

func TestSuspendAndRefuseGuards(t *testing.T) {
	clients := &stubClients{byID: &domain.ClientAccount{ID: "c1", Status: domain.ClientActive}}
	svc := newService(clients, &stubAdmins{})

	if err := svc.Suspend(context.Background(), "c1"); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if clients.lastStatus != domain.ClientSuspended {
		t.Fatalf("status = %s, want suspended", clients.lastStatus)
	}

	// Refuse only applies to pending applications.
	if err := svc.Refuse(context.Background(), "c1"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
