// Package session classifies an authenticated identity into the role that
// decides where they land after login.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"frituurgros/internal/domain"
)

// Role is the outcome of classifying a signed-in identity.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleClientActive  Role = "CLIENT_ACTIVE"
	RoleClientPending Role = "CLIENT_PENDING"
	RoleClientBlocked Role = "CLIENT_BLOCKED"
	RoleUnknown       Role = "UNKNOWN"
)

// Decision is the terminal routing outcome. SignOut tells the caller to
// drop the session: the credentials are valid but the identity holds no
// usable role.
type Decision struct {
	Role        Role   `json:"role"`
	Destination string `json:"destination"`
	SignOut     bool   `json:"signOut"`
}

type adminLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type clientLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error)
}

type Service struct {
	admins  adminLookup
	clients clientLookup
	logger  *zap.Logger
}

func New(admins adminLookup, clients clientLookup, logger *zap.Logger) *Service {
	return &Service{admins: admins, clients: clients, logger: logger}
}

// Classify looks up the admin record, then the client record, and
// short-circuits on the first match. A lookup failure counts as "not found"
// and the sequence continues; the failure is logged so an outage does not
// pass entirely unnoticed.
func (s *Service) Classify(ctx context.Context, email string) Decision {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("admin lookup failed, treating as not found", zap.String("email", email), zap.Error(err))
	}
	if err == nil && admin.Active {
		return Decision{Role: RoleAdmin, Destination: "/admin"}
	}

	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("client lookup failed, treating as not found", zap.String("email", email), zap.Error(err))
		}
		return Decision{Role: RoleUnknown, Destination: "/login", SignOut: true}
	}

	switch client.Status {
	case domain.ClientActive:
		return Decision{Role: RoleClientActive, Destination: "/shop"}
	case domain.ClientPending:
		return Decision{Role: RoleClientPending, Destination: "/pending"}
	case domain.ClientSuspended, domain.ClientRefused:
		return Decision{Role: RoleClientBlocked, Destination: "/login", SignOut: true}
	default:
		return Decision{Role: RoleUnknown, Destination: "/login", SignOut: true}
	}
}
