package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgauth "github.com/nutrimart/nutrimart-backend/pkg/auth"
	"github.com/nutrimart/nutrimart-backend/pkg/auth/session"
	"github.com/nutrimart/nutrimart-backend/pkg/config"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/nutrimart/nutrimart-backend/pkg/security"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "nutrimart-test",
	ExpirationMinutes: 15,
}

type stubUserStore struct {
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
	created    *models.User
	lastLogin  *time.Time
}

func newStubUserStore(seed ...*models.User) *stubUserStore {
	s := &stubUserStore{
		byUsername: map[string]*models.User{},
		byEmail:    map[string]*models.User{},
	}
	for _, u := range seed {
		s.byUsername[u.Username] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	s.created = user
	s.byUsername[user.Username] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubSessions struct {
	tokens  map[string]string
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newID := session.NewAccessID()
	return newID, "refresh-" + newID, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.tokens, accessID)
	return nil
}

func newTestService(t *testing.T, users UserStore, sessions SessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:  users,
		Sessions:  sessions,
		JWTConfig: testJWTConfig,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedAccount(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Username:     "lifter",
		Email:        "lifter@example.com",
		PasswordHash: hash,
	}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username: "newbie",
		Email:    "Newbie@Example.com",
		Password: "s3cret-password",
		Phone:    "+1000000",
	}
}

func TestRegisterCreatesAccountAndLogsIn(t *testing.T) {
	store := newStubUserStore()
	sessions := newStubSessions()
	svc := newTestService(t, store, sessions)

	out, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if store.created == nil || store.created.Email != "newbie@example.com" {
		t.Fatalf("expected normalized account, got %+v", store.created)
	}
	if store.created.PasswordHash == "s3cret-password" {
		t.Fatal("password must be hashed")
	}
	if out.Tokens.AccessToken == "" || out.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", out.Tokens)
	}
	if store.lastLogin == nil {
		t.Fatal("registration must stamp last login")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, out.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != store.created.ID {
		t.Fatal("token must carry the new account id")
	}
	if _, ok := sessions.tokens[claims.ID]; !ok {
		t.Fatal("refresh session must be keyed by the token jti")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	existing := seedAccount(t, "whatever-pass")
	svc := newTestService(t, newStubUserStore(existing), newStubSessions())

	input := validRegistration()
	input.Username = existing.Username
	_, err := svc.Register(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := newTestService(t, newStubUserStore(), newStubSessions())

	input := validRegistration()
	input.Password = "short"
	_, err := svc.Register(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	user := seedAccount(t, "correct-horse")
	store := newStubUserStore(user)
	svc := newTestService(t, store, newStubSessions())

	out, err := svc.Login(context.Background(), LoginInput{Username: "lifter", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.User.ID != user.ID {
		t.Fatalf("unexpected user %+v", out.User)
	}
	if store.lastLogin == nil {
		t.Fatal("login must stamp last login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := seedAccount(t, "correct-horse")
	svc := newTestService(t, newStubUserStore(user), newStubSessions())

	_, err := svc.Login(context.Background(), LoginInput{Username: "lifter", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc := newTestService(t, newStubUserStore(), newStubSessions())

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := seedAccount(t, "correct-horse")
	sessions := newStubSessions()
	svc := newTestService(t, newStubUserStore(user), sessions)

	out, err := svc.Login(context.Background(), LoginInput{Username: "lifter", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken == out.Tokens.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	// The old pair is dead after rotation.
	_, err = svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized after rotation, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	user := seedAccount(t, "correct-horse")
	sessions := newStubSessions()
	svc := newTestService(t, newStubUserStore(user), sessions)

	out, err := svc.Login(context.Background(), LoginInput{Username: "lifter", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig, out.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected jti revoked, got %+v", sessions.revoked)
	}
}
