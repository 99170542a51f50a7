package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"warehouse/internal/hash"
	"warehouse/internal/logging"
	"warehouse/internal/models"
	"warehouse/internal/repository"
)

const TokenTTL = time.Hour

var ErrInvalidRole = errors.New("role must be Admin or Employee")

type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users     *repository.UserRepo
	JWTSecret []byte
	Issuer    string
	Audience  string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	parsedRole, ok := models.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         parsedRole,
	}

	if err := s.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			l.Warn("register conflict", "username", username)
		} else {
			l.Error("register failed", "error", err)
		}
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			l.Warn("login failed", "reason", "invalid username or password")
			return nil, repository.ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, err
	}

	exp := time.Now().Add(TokenTTL)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		l.Error("login failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// ParseToken verifies signature, expiry, issuer and audience and returns the
// embedded claims.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}
	if s.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.Audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
