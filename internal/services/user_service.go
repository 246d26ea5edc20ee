// internal/services/user_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateUserRequest struct {
	Email          *string      `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password       *string      `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Role           *models.Role `json:"role,omitempty" validate:"omitempty,oneof=admin analyst supplier partner"`
	FirstName      *string      `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName       *string      `json:"last_name,omitempty" validate:"omitempty,max=100"`
	IsActive       *bool        `json:"is_active,omitempty"`
	OrganizationID *uuid.UUID   `json:"organization_id,omitempty"`
}

type UserFilter struct {
	utils.PaginationParams
	Role           models.Role
	OrganizationID *uuid.UUID
}

var userSortFields = []string{"created_at", "username", "email", "role"}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			searchPattern(filter.Search), searchPattern(filter.Search))
	}
	return paginate[models.User](query, filter.PaginationParams, userSortFields, "Organization")
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return findByID[models.User](s.db.WithContext(ctx), "user", id, "Organization")
}

// Update changes a user. Non-admins may only edit themselves and cannot
// change role or activation.
func (s *UserService) Update(ctx context.Context, actorID, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)

	actor, err := findByID[models.User](db, "user", actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown caller", ErrForbidden)
	}
	if actor.Role != models.RoleAdmin {
		if actorID != id {
			return nil, fmt.Errorf("%w: users may only update their own account", ErrForbidden)
		}
		if req.Role != nil || req.IsActive != nil {
			return nil, fmt.Errorf("%w: only administrators can change role or activation", ErrForbidden)
		}
	}

	if req.OrganizationID != nil {
		if err := ensureExists[models.Organization](db, "organization", *req.OrganizationID); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := ensureUniqueUser(db, "", *req.Email, id); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "email", req.Email)
	setIf(updates, "role", req.Role)
	setIf(updates, "first_name", req.FirstName)
	setIf(updates, "last_name", req.LastName)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "organization_id", req.OrganizationID)

	if req.Password != nil {
		var hashed models.User
		if err := hashed.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hashed.PasswordHash
	}

	if err := updateByID[models.User](db, "user", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.User](s.db.WithContext(ctx), "user", id)
}

// Roles lists every assignable role.
func (s *UserService) Roles() []models.Role {
	return models.Roles
}
