package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
)

// ErrInvalidCredentials is returned for unknown users, inactive users and wrong passwords alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// AuthConfig holds the token settings used by the auth service.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg AuthConfig, opts ...ServiceOption) portssvc.AuthSvc {
	o := applyOptions(opts)
	if cfg.JWTExpiry <= 0 {
		cfg.JWTExpiry = time.Hour
	}
	return &authService{
		BaseService: BaseService{now: o.now},
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Rejected login", slog.String("username", user.Username))
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.AccessTokenIssuer{Secret: s.cfg.JWTSecret, Issuer: s.cfg.JWTIssuer, TTL: s.cfg.JWTExpiry}.Issue(user.UserID, user.Username, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to issue token", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, err
	}
	return token, expiresAt, user, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrWeakPassword) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("username", username))
	return &user, nil
}

func (s *authService) SetUserActive(ctx context.Context, username string, active bool, actorID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}
	now := s.Now()
	if err := s.userRepo.UpdateUserStatus(ctx, user.UserID, active, actorID, now); err != nil {
		return nil, err
	}
	user.IsActive = active
	user.LastUpdatedBy = actorID
	user.LastUpdatedAt = now
	s.LogInfo(ctx, "User status changed", slog.String("user_id", user.UserID), slog.Bool("active", active))
	return user, nil
}
