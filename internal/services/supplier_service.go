// internal/services/supplier_service.go
package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

// Risk model weights.
const (
	highRiskRegionScore  = 0.4
	baselineRegionScore  = 0.1
	complianceRiskFactor = 0.1
	complianceRiskCap    = 0.3
	missingPlanPenalty   = 0.1
	certificationCredit  = 0.05
)

// highDeforestationRiskCountries carry the elevated region score.
var highDeforestationRiskCountries = []string{
	"bolivia",
	"brazil",
	"cameroon",
	"colombia",
	"democratic republic of congo",
	"democratic republic of the congo",
	"indonesia",
	"malaysia",
	"papua new guinea",
	"paraguay",
	"peru",
}

type SupplierService struct {
	db *gorm.DB
}

type CreateSupplierRequest struct {
	Name                  string              `json:"name" validate:"required,max=255"`
	Type                  models.SupplierType `json:"type" validate:"required,oneof=producer processor manufacturer distributor"`
	Country               string              `json:"country" validate:"required,max=100"`
	Region                string              `json:"region,omitempty" validate:"max=100"`
	Coordinates           *models.GeoPoint    `json:"coordinates,omitempty"`
	ContactPerson         string              `json:"contact_person,omitempty" validate:"max=255"`
	ContactEmail          string              `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone          string              `json:"contact_phone,omitempty" validate:"max=50"`
	Certifications        []string            `json:"certifications,omitempty"`
	RiskScore             float64             `json:"risk_score,omitempty"`
	HasSustainabilityPlan bool                `json:"has_sustainability_plan,omitempty"`
	IsActive              *bool               `json:"is_active,omitempty"`
	OrganizationID        uuid.UUID           `json:"organization_id" validate:"required"`
}

type UpdateSupplierRequest struct {
	Name                  *string              `json:"name,omitempty" validate:"omitempty,max=255"`
	Type                  *models.SupplierType `json:"type,omitempty" validate:"omitempty,oneof=producer processor manufacturer distributor"`
	Country               *string              `json:"country,omitempty" validate:"omitempty,max=100"`
	Region                *string              `json:"region,omitempty" validate:"omitempty,max=100"`
	Coordinates           *models.GeoPoint     `json:"coordinates,omitempty"`
	ContactPerson         *string              `json:"contact_person,omitempty" validate:"omitempty,max=255"`
	ContactEmail          *string              `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone          *string              `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	Certifications        *[]string            `json:"certifications,omitempty"`
	RiskScore             *float64             `json:"risk_score,omitempty"`
	HasSustainabilityPlan *bool                `json:"has_sustainability_plan,omitempty"`
	IsActive              *bool                `json:"is_active,omitempty"`
	OrganizationID        *uuid.UUID           `json:"organization_id,omitempty"`
}

type SupplierFilter struct {
	utils.PaginationParams
	OrganizationID *uuid.UUID
	Type           models.SupplierType
	Country        string
}

type RiskAssessment struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	RiskScore float64          `json:"risk_score"`
	RiskLevel models.RiskLevel `json:"risk_level"`
}

var supplierSortFields = []string{"created_at", "name", "country", "risk_score"}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

func (s *SupplierService) List(ctx context.Context, filter SupplierFilter) ([]models.Supplier, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern(filter.Search))
	}
	return paginate[models.Supplier](query, filter.PaginationParams, supplierSortFields, "Organization")
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	return findByID[models.Supplier](s.db.WithContext(ctx), "supplier", id, "Organization")
}

func (s *SupplierService) Create(ctx context.Context, req *CreateSupplierRequest) (*models.Supplier, error) {
	db := s.db.WithContext(ctx)

	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}
	if err := ensureExists[models.Organization](db, "organization", req.OrganizationID); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		Name:                  req.Name,
		Type:                  req.Type,
		Country:               req.Country,
		Region:                req.Region,
		Coordinates:           req.Coordinates,
		ContactPerson:         req.ContactPerson,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		Certifications:        stringList(req.Certifications),
		RiskScore:             models.Clamp01(req.RiskScore),
		HasSustainabilityPlan: req.HasSustainabilityPlan,
		IsActive:              boolOr(req.IsActive, true),
		OrganizationID:        req.OrganizationID,
	}

	if err := db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *UpdateSupplierRequest) (*models.Supplier, error) {
	db := s.db.WithContext(ctx)

	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}
	if req.OrganizationID != nil {
		if err := ensureExists[models.Organization](db, "organization", *req.OrganizationID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "type", req.Type)
	setIf(updates, "country", req.Country)
	setIf(updates, "region", req.Region)
	setIf(updates, "contact_person", req.ContactPerson)
	setIf(updates, "contact_email", req.ContactEmail)
	setIf(updates, "contact_phone", req.ContactPhone)
	setIf(updates, "has_sustainability_plan", req.HasSustainabilityPlan)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "organization_id", req.OrganizationID)
	if req.Coordinates != nil {
		updates["coordinates"] = req.Coordinates
	}
	if req.Certifications != nil {
		updates["certifications"] = stringList(*req.Certifications)
	}
	if req.RiskScore != nil {
		updates["risk_score"] = models.Clamp01(*req.RiskScore)
	}

	if err := updateByID[models.Supplier](db, "supplier", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Supplier](s.db.WithContext(ctx), "supplier", id)
}

// CalculateRisk scores a supplier from its region, open grievances,
// sustainability plan and certifications, and stores the result.
func (s *SupplierService) CalculateRisk(ctx context.Context, id uuid.UUID) (*RiskAssessment, error) {
	db := s.db.WithContext(ctx)

	supplier, err := findByID[models.Supplier](db, "supplier", id)
	if err != nil {
		return nil, err
	}

	var severities []models.Severity
	if err := db.Model(&models.Grievance{}).
		Where("supplier_id = ? AND status IN ?", id, []models.GrievanceStatus{
			models.GrievanceStatusReported, models.GrievanceStatusUnderInvestigation,
		}).
		Pluck("severity", &severities).Error; err != nil {
		return nil, fmt.Errorf("failed to load grievances: %w", err)
	}

	score := RiskScore(supplier, severities)
	if err := db.Model(&models.Supplier{}).Where("id = ?", id).Update("risk_score", score).Error; err != nil {
		return nil, fmt.Errorf("failed to store risk score: %w", err)
	}

	return &RiskAssessment{
		ID:        supplier.ID,
		Name:      supplier.Name,
		RiskScore: score,
		RiskLevel: models.RiskLevelFor(score),
	}, nil
}

// RiskScore combines region risk, open grievance severity, plan status and
// certification credit into a score in [0,1].
func RiskScore(supplier *models.Supplier, openSeverities []models.Severity) float64 {
	region := baselineRegionScore
	if IsHighRiskCountry(supplier.Country) {
		region = highRiskRegionScore
	}

	var weight float64
	for _, sev := range openSeverities {
		weight += sev.Weight()
	}
	compliance := min(complianceRiskCap, weight*complianceRiskFactor)

	score := region + compliance
	if !supplier.HasSustainabilityPlan {
		score += missingPlanPenalty
	}
	score -= float64(len(supplier.Certifications)) * certificationCredit

	return models.Clamp01(score)
}

func IsHighRiskCountry(country string) bool {
	return slices.Contains(highDeforestationRiskCountries, strings.ToLower(strings.TrimSpace(country)))
}

func validatePoint(p *models.GeoPoint) error {
	if p == nil {
		return nil
	}
	if err := p.Validate(); err != nil {
		return invalidInput("coordinates: %v", err)
	}
	return nil
}

func stringList(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}
