package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"bdl-cms/config"
	"bdl-cms/models"
	"bdl-cms/repositories"
)

type AuthService interface {
	// Register creates an account. The requested role is only honoured when
	// the caller is an admin; the very first account becomes admin.
	Register(ctx context.Context, req models.RegisterRequest, caller models.Session) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, caller models.Session) ([]models.User, error)
	SetRole(ctx context.Context, id uint, role models.Role, caller models.Session) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest, caller models.Session) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user already exists: %w", models.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.Standard(models.RoleEleve)
	if caller.IsAdmin && req.Role != nil {
		role = *req.Role
	} else {
		count, err := s.userRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			role = models.Standard(models.RoleAdmin)
		}
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	token, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) ListUsers(ctx context.Context, caller models.Session) ([]models.User, error) {
	if !caller.IsAdmin {
		return nil, fmt.Errorf("listing users: %w", models.ErrForbidden)
	}
	return s.userRepo.List(ctx)
}

func (s *authService) SetRole(ctx context.Context, id uint, role models.Role, caller models.Session) error {
	if !caller.IsAdmin {
		return fmt.Errorf("changing roles: %w", models.ErrForbidden)
	}
	if id == caller.UserID && !role.Is(models.RoleAdmin) {
		return fmt.Errorf("admins cannot demote themselves: %w", models.ErrInvalid)
	}
	return s.userRepo.UpdateRole(ctx, id, role)
}

// GenerateToken signs an HS256 token carrying the user id, name and role.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role.String(),
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(config.JWTSecret)
}
