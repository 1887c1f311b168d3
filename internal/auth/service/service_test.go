package service

import (
	"context"
	"testing"
	"time"

	"membercare_backend/internal/auth/password"
	"membercare_backend/internal/auth/repository"
	"membercare_backend/internal/auth/token"
	"membercare_backend/internal/auth/transport"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/events"
	"membercare_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeRepo struct {
	users         map[uuid.UUID]repository.User
	usersByEmail  map[string]repository.User
	refreshTokens map[string]refreshRecord
	registered    []repository.RegisterChurchParams
}

type refreshRecord struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         map[uuid.UUID]repository.User{},
		usersByEmail:  map[string]repository.User{},
		refreshTokens: map[string]refreshRecord{},
	}
}

func (f *fakeRepo) addUser(user repository.User) {
	f.users[user.ID] = user
	f.usersByEmail[user.Email] = user
}

func (f *fakeRepo) RegisterChurch(_ context.Context, params repository.RegisterChurchParams) (repository.User, error) {
	if _, exists := f.usersByEmail[params.AdminEmail]; exists {
		return repository.User{}, apperr.Conflict("email already registered")
	}
	f.registered = append(f.registered, params)
	user := repository.User{
		ID:           uuid.New(),
		ChurchID:     uuid.New(),
		Email:        params.AdminEmail,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Roles:        []string{"admin"},
		CreatedAt:    time.Now(),
	}
	f.addUser(user)
	return user, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, userID uuid.UUID) (repository.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeRepo) CreateRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.refreshTokens[tokenHash] = refreshRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeRepo) GetRefreshToken(_ context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	record, ok := f.refreshTokens[tokenHash]
	if !ok {
		return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
	}
	return record.userID, record.expiresAt, nil
}

func (f *fakeRepo) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	delete(f.refreshTokens, tokenHash)
	return nil
}

func (f *fakeRepo) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	for hash, record := range f.refreshTokens {
		if record.userID == userID {
			delete(f.refreshTokens, hash)
		}
	}
	return nil
}

type fakeConfig struct{}

func (fakeConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (fakeConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }

func newTestService(repo *fakeRepo, bus events.Bus) *Service {
	if bus == nil {
		bus = events.NewInMemoryBus(logger.New("test"))
	}
	return New(repo, fakeConfig{}, bus, logger.New("test"))
}

func registerRequest() transport.RegisterChurchRequest {
	return transport.RegisterChurchRequest{
		ChurchName:  "Grace Chapel",
		ChurchEmail: "Office@GraceChapel.org",
		FirstName:   "Ama",
		LastName:    "Mensah",
		AdminEmail:  "Ama@GraceChapel.org",
		Password:    "s3cure-enough",
	}
}

func TestRegisterIssuesTenantScopedToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if len(repo.registered) != 1 {
		t.Fatalf("expected one church registration, got %d", len(repo.registered))
	}
	if repo.registered[0].AdminEmail != "ama@gracechapel.org" {
		t.Fatalf("admin email not normalized: %q", repo.registered[0].AdminEmail)
	}
	if repo.registered[0].Country != "GH" {
		t.Fatalf("expected default country GH, got %q", repo.registered[0].Country)
	}

	parsed, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
	if claims["church_id"] != resp.User.ChurchID {
		t.Fatalf("church_id claim %v does not match user tenant %s", claims["church_id"], resp.User.ChurchID)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected a refresh token")
	}
	if _, ok := repo.refreshTokens[token.HashSHA256(resp.RefreshToken)]; !ok {
		t.Fatal("refresh token hash was not persisted")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	hash, err := password.Hash("right-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.addUser(repository.User{
		ID:           uuid.New(),
		ChurchID:     uuid.New(),
		Email:        "pastor@example.org",
		PasswordHash: hash,
		Roles:        []string{"admin"},
	})
	svc := newTestService(repo, nil)

	if _, err := svc.Login(context.Background(), "pastor@example.org", "wrong-password"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.org", "right-password"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown email should look identical to a bad password, got %v", err)
	}

	resp, err := svc.Login(context.Background(), "Pastor@Example.org", "right-password")
	if err != nil {
		t.Fatalf("Login with correct credentials failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rotated.RefreshToken == resp.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	if _, ok := repo.refreshTokens[token.HashSHA256(resp.RefreshToken)]; ok {
		t.Fatal("presented refresh token should be revoked")
	}

	if _, err := svc.Refresh(context.Background(), resp.RefreshToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("replayed refresh token should be rejected, got %v", err)
	}
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	userID := uuid.New()
	repo.addUser(repository.User{ID: userID, ChurchID: uuid.New(), Email: "x@example.org"})
	repo.refreshTokens[token.HashSHA256("stale")] = refreshRecord{
		userID:    userID,
		expiresAt: time.Now().Add(-time.Hour),
	}

	if _, err := svc.Refresh(context.Background(), "stale"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
	if _, ok := repo.refreshTokens[token.HashSHA256("stale")]; ok {
		t.Fatal("expired token should be revoked on presentation")
	}
}
