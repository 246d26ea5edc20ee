// internal/services/organization_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type OrganizationService struct {
	db *gorm.DB
}

type CreateOrganizationRequest struct {
	Name         string                  `json:"name" validate:"required,max=255"`
	Type         models.OrganizationType `json:"type" validate:"required,oneof=brand supplier ngo government"`
	Country      string                  `json:"country,omitempty" validate:"max=100"`
	Address      string                  `json:"address,omitempty"`
	ContactEmail string                  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string                  `json:"contact_phone,omitempty" validate:"max=50"`
	Website      string                  `json:"website,omitempty" validate:"omitempty,url"`
	IsActive     *bool                   `json:"is_active,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name         *string                  `json:"name,omitempty" validate:"omitempty,max=255"`
	Type         *models.OrganizationType `json:"type,omitempty" validate:"omitempty,oneof=brand supplier ngo government"`
	Country      *string                  `json:"country,omitempty" validate:"omitempty,max=100"`
	Address      *string                  `json:"address,omitempty"`
	ContactEmail *string                  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string                  `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	Website      *string                  `json:"website,omitempty" validate:"omitempty,url"`
	IsActive     *bool                    `json:"is_active,omitempty"`
}

type OrganizationFilter struct {
	utils.PaginationParams
	Type models.OrganizationType
}

var organizationSortFields = []string{"created_at", "name", "type", "country"}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

func (s *OrganizationService) List(ctx context.Context, filter OrganizationFilter) ([]models.Organization, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern(filter.Search))
	}
	return paginate[models.Organization](query, filter.PaginationParams, organizationSortFields)
}

func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return findByID[models.Organization](s.db.WithContext(ctx), "organization", id)
}

func (s *OrganizationService) Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error) {
	org := &models.Organization{
		Name:         req.Name,
		Type:         req.Type,
		Country:      req.Country,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Website:      req.Website,
		IsActive:     boolOr(req.IsActive, true),
	}

	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, req *UpdateOrganizationRequest) (*models.Organization, error) {
	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "type", req.Type)
	setIf(updates, "country", req.Country)
	setIf(updates, "address", req.Address)
	setIf(updates, "contact_email", req.ContactEmail)
	setIf(updates, "contact_phone", req.ContactPhone)
	setIf(updates, "website", req.Website)
	setIf(updates, "is_active", req.IsActive)

	if err := updateByID[models.Organization](s.db.WithContext(ctx), "organization", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Organization](s.db.WithContext(ctx), "organization", id)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
