package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/config"
	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/internal/repository"
	"github.com/enlivotechnologies/leads-tracker/pkg/jwt"
	"github.com/enlivotechnologies/leads-tracker/pkg/redis"
)

// ── auth module business errors ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// AuthService handles login accounts and session tokens.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.EmployeeResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout revokes the presented access token until it expires.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CurrentEmployee(ctx context.Context, userID string) (*dto.EmployeeResponse, error)
}

type authService struct {
	cfg         *config.Config
	repo        *repository.Repository
	employeeSvc EmployeeService
	jwtMgr      *jwt.Manager
	rdb         *redis.Client
	logger      *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	employeeSvc EmployeeService,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		repo:        repo,
		employeeSvc: employeeSvc,
		jwtMgr:      jwtMgr,
		rdb:         rdb,
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.Identity.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	identity := &model.Identity{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.Identity.Create(ctx, identity); err != nil {
		s.logger.Error("create identity failed", zap.Error(err))
		return nil, err
	}

	// The Employee record itself is created lazily on first login, same
	// as with a delegated identity provider.
	resp := dto.EmployeeResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
		Name:   identity.Name,
		Role:   model.RoleEmployee,
	}
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	identity, err := s.repo.Identity.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup identity failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	employee, err := s.employeeSvc.ResolveOrCreate(ctx, identity.UserID, identity.Email, identity.Name)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(employee, req.RememberMe)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && revoked {
			return nil, ErrTokenRevoked
		}
	}

	// Role and active status may have changed since issuance.
	employee, err := s.repo.Employee.GetByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrAccountDisabled
	}

	// Rotate: the presented refresh token is spent.
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("blacklist refresh token failed", zap.Error(err))
		}
	}

	return s.issueTokens(employee, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil // no blacklist available; token expires naturally
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) CurrentEmployee(ctx context.Context, userID string) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEmployeeResponse(employee)
	return &resp, nil
}

func (s *authService) issueTokens(employee *model.Employee, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(employee.UserID, employee.ID, employee.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(employee.UserID, employee.ID, employee.Role, rememberMe)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Employee:     dto.NewEmployeeResponse(employee),
	}, nil
}
