package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gwsanta/secret-santa-backend/config"
	"github.com/gwsanta/secret-santa-backend/utils"
)

var (
	ErrBadSignature = errors.New("signature verification failed")
	ErrStaleLogin   = errors.New("login signature already used or expired")
	ErrInvalidLogin = errors.New("invalid email or password")
	ErrInvalidToken = errors.New("invalid token")
)

type Service interface {
	GWarsLogin(ctx context.Context, p GWarsLoginParams) (*TokenPair, *User, error)
	LocalLogin(in LocalLoginRequest) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)
}

type service struct {
	repo          Repository
	gwarsPassword string
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		gwarsPassword: cfg.GWarsPassword,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// GWars cross-server login
// =============================

func (s *service) GWarsLogin(ctx context.Context, p GWarsLoginParams) (*TokenPair, *User, error) {
	now := time.Now()

	if !VerifySign(s.gwarsPassword, p.Name, p.NameEncoded, p.UserID, p.Sign) {
		return nil, nil, fmt.Errorf("%w: sign", ErrBadSignature)
	}
	if !VerifySign2(s.gwarsPassword, p.Level, p.Synd, p.UserID, p.Sign2) {
		return nil, nil, fmt.Errorf("%w: sign2", ErrBadSignature)
	}
	if !VerifySign3(s.gwarsPassword, p.Name, p.UserID, p.HasPassport, p.HasMobile, p.OldPassport, p.Sign3) {
		return nil, nil, fmt.Errorf("%w: sign3", ErrBadSignature)
	}
	if !VerifySign4(s.gwarsPassword, p.Sign3, p.Sign4, now) {
		return nil, nil, fmt.Errorf("%w: sign4", ErrBadSignature)
	}

	// sign4 is only date-bound, so guard against replay of a captured URL
	// for the rest of the day
	replayKey := fmt.Sprintf("gwars:sign4:%d:%s", p.UserID, p.Sign4)
	if utils.Redis() != nil {
		fresh, err := utils.SetNX(ctx, replayKey, "1", 24*time.Hour)
		if err == nil && !fresh {
			return nil, nil, ErrStaleLogin
		}
	}

	role, err := s.repo.FindRoleByName("participant")
	if err != nil {
		return nil, nil, fmt.Errorf("participant role missing: %w", err)
	}

	lastLogin := now
	user := &User{
		GameUserID:  p.UserID,
		Username:    p.Name,
		Level:       p.Level,
		Syndicate:   int(p.Synd),
		HasPassport: p.HasPassport == 1,
		HasMobile:   p.HasMobile == 1,
		OldPassport: p.OldPassport == 1,
		UserSex:     p.UserSex,
		RoleID:      role.ID,
		LastLogin:   &lastLogin,
	}

	if err := s.repo.UpsertGameUser(user); err != nil {
		return nil, nil, err
	}

	full, err := s.repo.FindByGameUserID(p.UserID)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(full.ID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, full, nil
}

// =============================
// Local login (seeded superadmin)
// =============================

func (s *service) LocalLogin(in LocalLoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		return nil, nil, ErrInvalidLogin
	}
	if user.PasswordHash == "" {
		return nil, nil, ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, ErrInvalidLogin
	}

	_ = s.repo.UpdateLastLogin(user.ID, time.Now())

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// =============================
// Tokens
// =============================

func (s *service) issueTokens(userID uint) (*TokenPair, error) {
	access, err := s.signToken(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) signToken(userID uint, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}

	return s.signToken(uint(userIDFloat), s.accessSecret, s.accessTTL)
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}
