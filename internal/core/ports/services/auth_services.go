package services

import (
	"context"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
)

// AuthSvc authenticates operators and issues access tokens.
type AuthSvc interface {
	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, user *domain.User, err error)

	// CreateUser registers a new operator with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error)

	// SetUserActive enables or disables login for username. Existing tokens stay
	// valid until they expire.
	SetUserActive(ctx context.Context, username string, active bool, actorID string) (*domain.User, error)
}
