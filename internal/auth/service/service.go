// Package service implements authentication for church tenant accounts.
package service

import (
	"context"
	"strings"
	"time"

	"membercare_backend/internal/auth/password"
	"membercare_backend/internal/auth/repository"
	"membercare_backend/internal/auth/token"
	"membercare_backend/internal/auth/transport"
	"membercare_backend/internal/events"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/config"
	"membercare_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType = "access"
	refreshTokenTTL = 30 * 24 * time.Hour
	defaultCountry  = "GH"
)

type Service struct {
	repo repository.AuthRepository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.AuthRepository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register provisions a new church and its first admin account, then
// signs the admin in. The admin receives the "admin" role.
func (s *Service) Register(ctx context.Context, req transport.RegisterChurchRequest) (transport.AuthResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = defaultCountry
	}

	user, err := s.repo.RegisterChurch(ctx, repository.RegisterChurchParams{
		ChurchName:   strings.TrimSpace(req.ChurchName),
		ChurchEmail:  normalizeEmail(req.ChurchEmail),
		ChurchPhone:  req.ChurchPhone,
		Country:      country,
		AdminEmail:   normalizeEmail(req.AdminEmail),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	})
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.bus.Publish(ctx, events.ChurchRegistered{
		BaseEvent:   events.NewBaseEvent(),
		ChurchID:    user.ChurchID,
		Name:        strings.TrimSpace(req.ChurchName),
		AdminUserID: user.ID,
		AdminEmail:  user.Email,
	})

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (transport.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token. The presented token is revoked
// whether or not a new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (transport.AuthResponse, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	if time.Now().After(expiresAt) {
		return transport.AuthResponse{}, apperr.Unauthorized("refresh token expired")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. Revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken))
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return toProfileResponse(user), nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (transport.AuthResponse, error) {
	accessToken, err := s.signJWT(user)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "sign access token", err)
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "generate refresh token", err)
	}

	expiresAt := time.Now().Add(refreshTokenTTL)
	if err := s.repo.CreateRefreshToken(ctx, user.ID, token.HashSHA256(refreshToken), expiresAt); err != nil {
		return transport.AuthResponse{}, err
	}

	return transport.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.GetAccessTokenTTL() / time.Second),
		User:         toProfileResponse(user),
	}, nil
}

func (s *Service) signJWT(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"type":      accessTokenType,
		"roles":     user.Roles,
		"church_id": user.ChurchID.String(),
		"exp":       now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func toProfileResponse(user repository.User) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:        user.ID.String(),
		ChurchID:  user.ChurchID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
