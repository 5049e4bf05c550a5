package service

import (
	"context"
	"errors"
	"time"

	"github.com/thekada/kada-backend/config"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/pkg/logger"
	"github.com/thekada/kada-backend/pkg/redis"
	"github.com/thekada/kada-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Phone       string
	Role        model.UserRole
	FranchiseID *uint
}

type LoginResult struct {
	User   *model.User     `json:"user"`
	Tokens *util.TokenPair `json:"tokens"`
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*LoginResult, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
	RevokeToken(refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtConfig config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtConfig config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwtConfig: jwtConfig}
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleFranchise
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         role,
		FranchiseID:  input.FranchiseID,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenExpiry, s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh validates a refresh token and issues a fresh pair. The user is
// re-read so revoked accounts stop refreshing immediately.
func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtConfig.Secret)
	if err != nil {
		return nil, err
	}
	if claims.Subject != "refresh" {
		return nil, util.ErrInvalidToken
	}

	if redis.GetClient() != nil {
		revoked, err := redis.IsTokenBlacklisted(context.Background(), refreshToken)
		if err == nil && revoked {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenExpiry, s.jwtConfig.RefreshTokenExpiry,
	)
}

// RevokeToken blacklists a refresh token until its natural expiry. Without
// Redis the token simply expires on schedule.
func (s *authService) RevokeToken(refreshToken string) error {
	claims, err := util.ValidateToken(refreshToken, s.jwtConfig.Secret)
	if err != nil {
		// Expired or malformed tokens are already unusable.
		return nil
	}
	if redis.GetClient() == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.BlacklistToken(context.Background(), refreshToken, ttl)
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
