package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
)

// tokenTTL is long-lived on purpose. Managers stay signed in on their own
// dashboard; there is no refresh flow.
const tokenTTL = 30 * 24 * time.Hour

// AuthService handles manager signup, login and token validation
type AuthService struct {
	managerRepo repository.ManagerRepo
	jwtSecret   []byte
}

// NewAuthService creates a new auth service
func NewAuthService(managerRepo repository.ManagerRepo, jwtSecret string) *AuthService {
	return &AuthService{
		managerRepo: managerRepo,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Signup registers a new manager account and returns a signed token
func (s *AuthService) Signup(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.managerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	manager := &model.Manager{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.managerRepo.Create(ctx, manager); err != nil {
		return nil, err
	}

	return s.issueToken(manager)
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	manager, err := s.managerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(manager)
}

// ValidateToken validates a manager JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.ManagerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ManagerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ManagerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(manager *model.Manager) (*model.LoginResponse, error) {
	claims := &model.ManagerClaims{
		ManagerID: manager.ID,
		Email:     manager.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		ManagerID: manager.ID,
	}, nil
}
