// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name                string    `json:"name" validate:"required,max=255"`
	Category            string    `json:"category" validate:"required,max=100"`
	Description         string    `json:"description,omitempty"`
	Certifications      []string  `json:"certifications,omitempty"`
	IsDeforestationFree bool      `json:"is_deforestation_free,omitempty"`
	IsActive            *bool     `json:"is_active,omitempty"`
	SupplierID          uuid.UUID `json:"supplier_id" validate:"required"`
}

type UpdateProductRequest struct {
	Name                *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Category            *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Description         *string    `json:"description,omitempty"`
	Certifications      *[]string  `json:"certifications,omitempty"`
	IsDeforestationFree *bool      `json:"is_deforestation_free,omitempty"`
	IsActive            *bool      `json:"is_active,omitempty"`
	SupplierID          *uuid.UUID `json:"supplier_id,omitempty"`
}

type VerifyProductRequest struct {
	IsDeforestationFree bool   `json:"is_deforestation_free"`
	VerificationMethod  string `json:"verification_method" validate:"required,max=255"`
}

type ProductFilter struct {
	utils.PaginationParams
	SupplierID *uuid.UUID
	Category   string
	Verified   *bool
}

var productSortFields = []string{"created_at", "name", "category", "verification_date"}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern(filter.Search))
	}
	return paginate[models.Product](query, filter.PaginationParams, productSortFields, "Supplier")
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return findByID[models.Product](s.db.WithContext(ctx), "product", id, "Supplier")
}

// ListBySupplier returns a supplier's products; an unknown supplier is a miss.
func (s *ProductService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	if err := ensureFound[models.Supplier](s.db.WithContext(ctx), "supplier", supplierID); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, ProductFilter{PaginationParams: params, SupplierID: &supplierID})
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	db := s.db.WithContext(ctx)

	if err := ensureExists[models.Supplier](db, "supplier", req.SupplierID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:                req.Name,
		Category:            req.Category,
		Description:         req.Description,
		Certifications:      stringList(req.Certifications),
		IsDeforestationFree: req.IsDeforestationFree,
		IsActive:            boolOr(req.IsActive, true),
		SupplierID:          req.SupplierID,
	}

	if err := db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	db := s.db.WithContext(ctx)

	if req.SupplierID != nil {
		if err := ensureExists[models.Supplier](db, "supplier", *req.SupplierID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "category", req.Category)
	setIf(updates, "description", req.Description)
	setIf(updates, "is_deforestation_free", req.IsDeforestationFree)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "supplier_id", req.SupplierID)
	if req.Certifications != nil {
		updates["certifications"] = stringList(*req.Certifications)
	}

	if err := updateByID[models.Product](db, "product", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Verify records the outcome of a deforestation-free verification.
func (s *ProductService) Verify(ctx context.Context, id uuid.UUID, req *VerifyProductRequest) (*models.Product, error) {
	updates := map[string]interface{}{
		"is_deforestation_free": req.IsDeforestationFree,
		"is_verified":           true,
		"verification_date":     time.Now(),
		"verification_method":   req.VerificationMethod,
	}

	if err := updateByID[models.Product](s.db.WithContext(ctx), "product", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Product](s.db.WithContext(ctx), "product", id)
}
