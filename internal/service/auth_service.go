package service

import (
	"context"
	"time"

	"shiftiq/internal/dto"
	"shiftiq/internal/models"
	"shiftiq/internal/repository"
	"shiftiq/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	profileRepo *repository.ProfileRepository
	jwtManager  *auth.JWTManager
	logger      *zap.Logger
}

func NewAuthService(profileRepo *repository.ProfileRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, _ := s.profileRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// New accounts start as staff; roles are raised by an admin.
	now := time.Now()
	profile := &models.Profile{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hashedPassword,
		FullName:  req.FullName,
		Role:      models.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(profile)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, profile.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(profile)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.buildAuthResponse(profile)
}

func (s *AuthService) buildAuthResponse(profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(profile.ID.String(), profile.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(profile.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:       profile.ID.String(),
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     string(profile.Role),
		},
	}, nil
}
