package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/internal/users"
	pkgauth "github.com/nutrimart/nutrimart-backend/pkg/auth"
	"github.com/nutrimart/nutrimart-backend/pkg/auth/session"
	"github.com/nutrimart/nutrimart-backend/pkg/config"
	"github.com/nutrimart/nutrimart-backend/pkg/db"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/nutrimart/nutrimart-backend/pkg/security"
	"gorm.io/gorm"
)

// UserStore is the persistence surface the service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionManager handles the refresh side of issued tokens.
type SessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo    UserStore
	Sessions    SessionManager
	JWTConfig   config.JWTConfig
	PasswordCfg config.PasswordConfig
	Now         func() time.Time
}

// Service handles registration, login, logout, and token refresh.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (SessionDTO, error)
	Login(ctx context.Context, input LoginInput) (SessionDTO, error)
	Logout(ctx context.Context, accessID string) error
	Refresh(ctx context.Context, input RefreshInput) (TokenPairDTO, error)
}

type service struct {
	userRepo    UserStore
	sessions    SessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	validate    *validator.Validate
	now         func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secret is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		userRepo:    params.UserRepo,
		sessions:    params.Sessions,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordCfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		now:         now,
	}, nil
}

// Register creates the account and logs the user straight in.
func (s *service) Register(ctx context.Context, input RegisterInput) (SessionDTO, error) {
	if err := s.validate.Struct(input); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "account already exists")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
	}

	return s.openSession(ctx, &user)
}

// Login verifies credentials and issues a token pair.
func (s *service) Login(ctx context.Context, input LoginInput) (SessionDTO, error) {
	if err := s.validate.Struct(input); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid login")
	}

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
	}

	return s.openSession(ctx, user)
}

// Logout revokes the refresh session tied to the access token's jti. Safe to
// call twice.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Refresh rotates the refresh token and mints a fresh access token. The old
// access token may be expired; only its signature and jti matter.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (TokenPairDTO, error) {
	if err := s.validate.Struct(input); err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid refresh request")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, input.AccessToken)
	if err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid refresh token")
		}
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:   claims.UserID,
		Username: claims.Username,
		JTI:      newAccessID,
	})
	if err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return TokenPairDTO{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(s.jwtCfg.ExpirationMinutes) * 60,
	}, nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (SessionDTO, error) {
	now := s.now()
	accessID := session.NewAccessID()

	access, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      accessID,
	})
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session")
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp login")
	}

	return SessionDTO{
		User: users.ToDTO(*user),
		Tokens: TokenPairDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.jwtCfg.ExpirationMinutes) * 60,
		},
	}, nil
}
