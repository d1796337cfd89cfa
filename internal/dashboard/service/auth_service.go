package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/common"
	"tradepulse/pkg/logger"
	redisPkg "tradepulse/pkg/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrInvalidSession is returned when a bearer token has no live session.
var ErrInvalidSession = errors.New("invalid or expired session")

// AuthService is the mocked session layer: any credentials are accepted,
// users are persisted, and sessions are UUID bearer tokens held in Redis
// with a TTL.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*entity.User, error)
	UpdateRiskProfile(ctx context.Context, token string, profile *dto.RiskProfile) (*entity.User, error)
}

type authService struct {
	cfg         *config.Config
	logger      *logger.Logger
	userRepo    repository.UserRepository
	redisClient *redisPkg.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, log *logger.Logger, userRepo repository.UserRepository, redisClient *redisPkg.Client) AuthService {
	return &authService{
		cfg:         cfg,
		logger:      log,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

// Register creates a user and opens a session. The password is discarded.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = nameFromEmail(email)
	}

	user := &entity.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login opens a session for the email, creating the user on first login
// to preserve the demo behavior of accepting any credentials.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &entity.User{
			ID:    uuid.NewString(),
			Name:  nameFromEmail(email),
			Email: email,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Logout closes the session.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.redisClient.Del(ctx, fmt.Sprintf(common.RedisKeySession, token)).Err()
}

// GetUser resolves a bearer token to its user.
func (s *authService) GetUser(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.redisClient.Get(ctx, fmt.Sprintf(common.RedisKeySession, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateRiskProfile replaces the user's risk profile blob.
func (s *authService) UpdateRiskProfile(ctx context.Context, token string, profile *dto.RiskProfile) (*entity.User, error) {
	user, err := s.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal risk profile: %w", err)
	}
	user.RiskProfile = raw

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) openSession(ctx context.Context, user *entity.User) (*dto.SessionResponse, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(common.RedisKeySession, token)
	if err := s.redisClient.Set(ctx, key, user.ID, s.cfg.Session.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &dto.SessionResponse{Token: token, User: *user}, nil
}

func nameFromEmail(email string) string {
	local := email
	if idx := strings.Index(email, "@"); idx > 0 {
		local = email[:idx]
	}
	if local == "" {
		return "Trader"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
