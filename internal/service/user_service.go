package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// UserService coordina registro, login, logout y verificacion de tokens.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	tokens  TokenStore
	jwt     *JWTService
	hasher  PasswordHasher
	limiter LoginRateLimiter
}

func NewUserService(
	logger *zap.Logger,
	users repository.UserRepository,
	tokens TokenStore,
	jwtSvc *JWTService,
	hasher PasswordHasher,
	limiter LoginRateLimiter,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &UserService{
		logger:  logger,
		users:   users,
		tokens:  tokens,
		jwt:     jwtSvc,
		hasher:  hasher,
		limiter: limiter,
	}
}

// Register valida, hashea el password, persiste el usuario y emite su primer token.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, string, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.User{}, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, "", err
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login no distingue email inexistente de password incorrecto.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, email) {
		return domain.User{}, "", domain.ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// IssueToken firma un token y lo agrega al conjunto del usuario antes de devolverlo.
func (s *UserService) IssueToken(ctx context.Context, userID string) (string, error) {
	if s.jwt == nil {
		return "", errors.New("jwt not configured")
	}
	token, err := s.jwt.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.tokens.Add(ctx, userID, domain.Token{Access: domain.TokenAccessAuth, Token: token}); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// Authenticate resuelve un token x-auth al usuario dueño.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if s.jwt == nil {
		return domain.User{}, domain.ErrInvalidToken
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return domain.User{}, domain.ErrInvalidToken
	}

	ok, err := s.tokens.Has(ctx, claims.UserID, domain.Token{Access: domain.TokenAccessAuth, Token: token})
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup token: %w", err)
	}
	if !ok {
		return domain.User{}, domain.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// Logout revoca el token; revocar uno ausente no es error.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	if err := s.tokens.Remove(ctx, userID, token); err != nil {
		s.logger.Warn("revoke token failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
