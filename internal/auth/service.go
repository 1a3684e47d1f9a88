// internal/auth/service.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/kindapp/kind-backend/internal/common/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Config holds authentication settings
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
	InitialSwipeCredits int
	InitialBoostCredits int
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type service struct {
	repo   Repository
	redis  *redis.Client
	config *Config
}

func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		SwipeCredits: s.config.InitialSwipeCredits,
		BoostCredits: s.config.InitialBoostCredits,
		Status:       StatusActive,
	}
	if req.City != "" {
		user.City = &req.City
	}
	if req.Region != "" {
		user.Region = &req.Region
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status == StatusSuspended {
		return nil, ErrAccountSuspended
	}

	// Non-fatal; the login still succeeds without it.
	_ = s.repo.UpdateLastActive(ctx, user.ID)

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	if s.isRevoked(ctx, claims.UserID, refreshToken) {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Status == StatusSuspended {
		return nil, ErrAccountSuspended
	}

	return s.issueTokens(user)
}

func (s *service) Logout(ctx context.Context, userID int64) error {
	if s.redis != nil {
		s.redis.Del(ctx, userCacheKey(userID))
		// Revoke all refresh tokens issued before now.
		s.redis.Set(ctx, revocationKey(userID),
			time.Now().Unix(), s.config.RefreshTokenExpiry)
	}
	return nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, userCacheKey(userID)).Result(); err == nil {
			var user User
			if json.Unmarshal([]byte(data), &user) == nil {
				return &user, nil
			}
		}
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)
	return user, nil
}

func (s *service) DeleteAccount(ctx context.Context, userID int64) error {
	if s.redis != nil {
		s.redis.Del(ctx, userCacheKey(userID))
	}
	return s.repo.DeleteUser(ctx, userID)
}

// issueTokens creates an access/refresh token pair for a user
func (s *service) issueTokens(user *User) (*TokenPair, error) {
	now := time.Now()

	access, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Type:      "access",
		ExpiresAt: now.Add(s.config.AccessTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "kind-api",
		Subject:   fmt.Sprintf("%d", user.ID),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Role:      user.Role,
		Type:      "refresh",
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "kind-api",
		Subject:   fmt.Sprintf("%d", user.ID),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

func (s *service) cacheUser(ctx context.Context, user *User) {
	if s.redis == nil {
		return
	}
	if data, err := json.Marshal(user); err == nil {
		s.redis.Set(ctx, userCacheKey(user.ID), data, 30*time.Minute)
	}
}

// isRevoked reports whether a refresh token was issued before the user's
// last logout. Without Redis revocation is unavailable and tokens are
// accepted until expiry.
func (s *service) isRevoked(ctx context.Context, userID int64, token string) bool {
	if s.redis == nil {
		return false
	}
	cutoff, err := s.redis.Get(ctx, revocationKey(userID)).Int64()
	if err != nil {
		return false
	}
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return true
	}
	return claims.IssuedAt < cutoff
}

func userCacheKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func revocationKey(userID int64) string {
	return fmt.Sprintf("auth:revoked:%d", userID)
}
