package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/config"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserSummary, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (*model.User, error)
}

type authServiceImpl struct {
	cfg      config.JWT
	userRepo repository.UserRepository
}

func NewAuthService(cfg config.JWT, userRepo repository.UserRepository) AuthService {
	return &authServiceImpl{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserSummary, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, apperr.Validation("username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	return &dto.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Duration(s.cfg.TTLHours) * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
	}, nil
}

// VerifyToken resolves a bearer token to the stored user row.
func (s *authServiceImpl) VerifyToken(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthenticated("invalid token")
	}

	rawID, ok := claims["id"].(float64)
	if !ok {
		return nil, apperr.Unauthenticated("invalid token, user id missing")
	}

	user, err := s.userRepo.FindByID(ctx, uint(rawID))
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated("invalid token, user not found")
	}

	return user, nil
}
