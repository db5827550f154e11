package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffsync/internal/apperror"
	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for malformed, expired or mistyped tokens.
var ErrInvalidToken = errors.New("invalid token")

// LoginResponse is returned by a successful login or refresh.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	memberRepo repositories.MemberRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(memberRepo repositories.MemberRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Login checks the credentials of a verified member and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = normalizeEmail(email)
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// same answer as a wrong password
			return nil, apperror.Validation("email", "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, apperror.Validation("email", "invalid email or password")
	}
	if !member.Verified {
		return nil, apperror.Validation("email", "email %s is not verified", email)
	}

	return s.issue(member)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	email, _ := claims["sub"].(string)
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, fmt.Errorf("%w: member no longer exists", ErrInvalidToken)
		}
		return nil, err
	}
	return s.issue(member)
}

func (s *AuthService) issue(member *models.Member) (*LoginResponse, error) {
	now := time.Now()

	accessToken, err := s.sign(jwt.MapClaims{
		"sub":  member.Email,
		"role": string(member.Role),
		"typ":  TokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(jwt.MapClaims{
		"sub": member.Email,
		"typ": TokenTypeRefresh,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        member.Email,
		Name:         member.Name,
		Role:         string(member.Role),
	}, nil
}

func (s *AuthService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates an HS256 token of the expected type, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != expectedType {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, expectedType)
	}
	if sub, _ := claims["sub"].(string); sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
