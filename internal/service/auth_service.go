package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"omenblog/internal/apperror"
	"omenblog/internal/config"
	"omenblog/internal/models"
	"omenblog/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	IssueToken(user *models.User) (string, error)
	ParseToken(tokenString string) (string, error)
	Authenticate(ctx context.Context, tokenString string) models.Identity
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", apperror.Validation("username and password are required")
	}

	user := &models.User{
		Username: username,
		Role:     models.RoleStandard,
	}

	if err := s.userRepo.CreateUser(ctx, user, password); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the user id the token was issued to.
func (s *authService) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindAuth, "invalid session", err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", apperror.Auth("invalid session")
	}

	return claims.Subject, nil
}

// Authenticate never fails: an empty token is Anonymous, and a token that
// cannot be verified or whose user no longer exists is Invalid.
func (s *authService) Authenticate(ctx context.Context, tokenString string) models.Identity {
	if tokenString == "" {
		return models.AnonymousIdentity()
	}

	userID, err := s.ParseToken(tokenString)
	if err != nil {
		return models.InvalidIdentity()
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.InvalidIdentity()
	}

	return models.IdentityOf(user)
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		return err
	}

	admin := &models.User{Username: username, Role: models.RoleAdmin}
	err = s.userRepo.CreateUser(ctx, admin, password)
	if err != nil && !apperror.Is(err, apperror.KindConflict) {
		return fmt.Errorf("provisioning admin: %w", err)
	}

	return nil
}
