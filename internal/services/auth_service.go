// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type SignUpRequest struct {
	Username       string      `json:"username" validate:"required,username"`
	Email          string      `json:"email" validate:"required,email,max=255"`
	Password       string      `json:"password" validate:"required,min=6,max=72"`
	Role           models.Role `json:"role,omitempty" validate:"omitempty,oneof=admin analyst supplier partner"`
	FirstName      string      `json:"first_name,omitempty" validate:"max=100"`
	LastName       string      `json:"last_name,omitempty" validate:"max=100"`
	OrganizationID *uuid.UUID  `json:"organization_id,omitempty"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	ID             uuid.UUID   `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	OrganizationID *uuid.UUID  `json:"organization_id"`
	AccessToken    string      `json:"access_token"`
	ExpiresAt      time.Time   `json:"expires_at"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req *SignUpRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)

	if req.Role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: administrators cannot self-register", ErrForbidden)
	}
	role := req.Role
	if role == "" {
		role = models.RoleAnalyst
	}

	if req.OrganizationID != nil {
		if err := ensureExists[models.Organization](db, "organization", *req.OrganizationID); err != nil {
			return nil, err
		}
	}

	if err := ensureUniqueUser(db, req.Username, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		Role:           role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IsActive:       true,
		OrganizationID: req.OrganizationID,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", req.Username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", ErrForbidden)
	}

	token, expiresAt, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &SignInResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		OrganizationID: user.OrganizationID,
		AccessToken:    token,
		ExpiresAt:      expiresAt,
	}, nil
}

// ensureUniqueUser rejects a username or email held by another user,
// including soft-deleted ones, since the unique indexes still cover them.
func ensureUniqueUser(db *gorm.DB, username, email string, except uuid.UUID) error {
	if username == "" && email == "" {
		return nil
	}

	var count int64
	query := db.Unscoped().Model(&models.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: username or email is already in use", ErrConflict)
	}
	return nil
}
