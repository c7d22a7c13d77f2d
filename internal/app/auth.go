package app

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// AuthService issues and verifies HS256 bearer tokens and owns the password
// hashing primitive.
type AuthService struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users domain.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return AuthResult{}, domain.Invalid("email and name are required")
	}
	if len(password) < 8 {
		return AuthResult{}, domain.Invalid("password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, domain.Conflict("email already registered")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Preferences:  domain.Preferences{FavoriteCategories: []domain.Category{}, DietaryRestrictions: []string{}},
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same message for unknown email and bad password.
		if domain.KindOf(err) == domain.KindNotFound {
			return AuthResult{}, domain.Unauthorized("invalid credentials")
		}
		return AuthResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, domain.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// CheckPassword verifies a user's current password; used by the profile
// operations that require confirmation.
func (s *AuthService) CheckPassword(user domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// HashPassword produces a bcrypt hash for storage.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Email: user.Email,
	})
	return token.SignedString(s.secret)
}

// ParseToken validates a bearer token and returns the subject user id.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", domain.Unauthorized("invalid or expired token")
	}
	return claims.Subject, nil
}
