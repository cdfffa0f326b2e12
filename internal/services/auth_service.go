package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

type Credentials struct {
	Username string
	Password string
}

// Empty reports whether either part is missing.
func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Password) == ""
}

// Principal is an authenticated caller and the routes it may read.
type Principal struct {
	Username  string
	RouteName string
	Scope     models.AccessScope
}

type AuthService interface {
	Authenticate(ctx context.Context, creds Credentials) (*Principal, error)
	Login(ctx context.Context, creds Credentials) (*models.LoginResponse, error)
	AuthenticateToken(token string) (*Principal, error)
}

type authService struct {
	loginRepo interfaces.LoginRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

func NewAuthService(loginRepo interfaces.LoginRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) AuthService {
	return &authService{
		loginRepo: loginRepo,
		limiter:   limiter,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		logger:    log,
	}
}

// Authenticate checks credentials against the login registry and resolves
// the caller's access scope.
func (s *authService) Authenticate(ctx context.Context, creds Credentials) (*Principal, error) {
	username := strings.TrimSpace(creds.Username)
	password := strings.TrimSpace(creds.Password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	locked, err := s.limiter.Locked(ctx, username)
	if err != nil {
		s.logger.WithError(err).Warn("Login limiter unavailable")
	}
	if locked {
		s.logger.LogSecurityEvent("login_locked", "medium", map[string]interface{}{"username": username})
		return nil, ErrTooManyAttempts
	}

	login, err := s.loginRepo.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.recordFailure(ctx, username)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.WithError(err).Warn("Failed to reset login attempts")
	}

	return principalFor(login.Username, login.DisplayRouteName())
}

func (s *authService) recordFailure(ctx context.Context, username string) {
	attempts, err := s.limiter.RecordFailure(ctx, username)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to record login attempt")
	}
	s.logger.LogSecurityEvent("login_failed", "low", map[string]interface{}{
		"username": username,
		"attempts": attempts,
	})
}

func principalFor(username, routeName string) (*Principal, error) {
	if utils.CanonicalKey(routeName) == "" {
		return nil, fmt.Errorf("%w: account has no route", ErrUnauthorized)
	}
	return &Principal{
		Username:  username,
		RouteName: routeName,
		Scope:     models.ScopeForRoute(routeName),
	}, nil
}

// Login authenticates and issues a bearer token carrying the route claim.
func (s *authService) Login(ctx context.Context, creds Credentials) (*models.LoginResponse, error) {
	principal, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateAccessToken(principal.Username, principal.RouteName, s.jwtSecret, s.tokenTTL, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.LoginResponse{
		User: models.LoginUser{
			Username:         principal.Username,
			RouteName:        principal.Scope.Label(),
			DisplayRouteName: principal.RouteName,
		},
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) AuthenticateToken(token string) (*Principal, error) {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return principalFor(claims.Username, claims.RouteName)
}
