package repositories

import (
	"context"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

// UserRepositoryFacade stores operator accounts. Usernames compare case-insensitively.
type UserRepositoryFacade interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
	// UpdateUserStatus enables or disables login for userID.
	UpdateUserStatus(ctx context.Context, userID string, active bool, updatedBy string, updatedAt time.Time) error
}
