// internal/services/kpi_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

const (
	KPINameDCF                    = "Verified DCF Percentage"
	KPINameGrievanceResolution    = "Grievance Resolution Rate"
	KPINameSupplierSustainability = "Suppliers with Sustainability Plans"
	dcfTarget                     = 100.0
	grievanceResolutionTarget     = 90.0
	supplierSustainabilityTarget  = 80.0
	atRiskShare                   = 0.75
	trendTolerance                = 0.5
)

type KPIService struct {
	db *gorm.DB
}

type CreateKPIRequest struct {
	Name           string             `json:"name" validate:"required,max=255"`
	Category       models.KPICategory `json:"category" validate:"required,oneof=environmental social governance economic"`
	Description    string             `json:"description,omitempty"`
	Value          *float64           `json:"value" validate:"required"`
	Target         *float64           `json:"target,omitempty"`
	Unit           string             `json:"unit,omitempty" validate:"max=50"`
	Date           *time.Time         `json:"date,omitempty"`
	Period         models.KPIPeriod   `json:"period,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	Trend          models.Trend       `json:"trend,omitempty" validate:"omitempty,oneof=increasing decreasing stable"`
	Status         models.KPIStatus   `json:"status,omitempty" validate:"omitempty,oneof=on_track at_risk off_track"`
	DataSource     string             `json:"data_source,omitempty" validate:"max=255"`
	Notes          string             `json:"notes,omitempty"`
	OrganizationID uuid.UUID          `json:"organization_id" validate:"required"`
}

type UpdateKPIRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,max=255"`
	Category       *models.KPICategory `json:"category,omitempty" validate:"omitempty,oneof=environmental social governance economic"`
	Description    *string             `json:"description,omitempty"`
	Value          *float64            `json:"value,omitempty"`
	Target         *float64            `json:"target,omitempty"`
	Unit           *string             `json:"unit,omitempty" validate:"omitempty,max=50"`
	Date           *time.Time          `json:"date,omitempty"`
	Period         *models.KPIPeriod   `json:"period,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	Trend          *models.Trend       `json:"trend,omitempty" validate:"omitempty,oneof=increasing decreasing stable"`
	Status         *models.KPIStatus   `json:"status,omitempty" validate:"omitempty,oneof=on_track at_risk off_track"`
	DataSource     *string             `json:"data_source,omitempty" validate:"omitempty,max=255"`
	Notes          *string             `json:"notes,omitempty"`
	OrganizationID *uuid.UUID          `json:"organization_id,omitempty"`
}

type KPIFilter struct {
	utils.PaginationParams
	OrganizationID *uuid.UUID
	Category       models.KPICategory
	Name           string
}

// KPIResult is a computed indicator. It is not persisted.
type KPIResult struct {
	OrganizationID uuid.UUID        `json:"organization_id"`
	KPIName        string           `json:"kpi_name"`
	Value          float64          `json:"value"`
	Target         float64          `json:"target"`
	Unit           string           `json:"unit"`
	Date           time.Time        `json:"date"`
	Trend          models.Trend     `json:"trend"`
	Status         models.KPIStatus `json:"status"`
}

var kpiSortFields = []string{"created_at", "date", "name", "value"}

func NewKPIService(db *gorm.DB) *KPIService {
	return &KPIService{db: db}
}

func (s *KPIService) List(ctx context.Context, filter KPIFilter) ([]models.KPI, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Sort == "" || filter.Sort == "created_at" {
		filter.Sort = "date"
	}
	return paginate[models.KPI](query, filter.PaginationParams, kpiSortFields)
}

func (s *KPIService) Get(ctx context.Context, id uuid.UUID) (*models.KPI, error) {
	return findByID[models.KPI](s.db.WithContext(ctx), "kpi", id, "Organization")
}

// ByOrganization lists an organization's KPIs. An unknown organization is a miss.
func (s *KPIService) ByOrganization(ctx context.Context, orgID uuid.UUID, params utils.PaginationParams) ([]models.KPI, int64, error) {
	if err := ensureFound[models.Organization](s.db.WithContext(ctx), "organization", orgID); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, KPIFilter{PaginationParams: params, OrganizationID: &orgID})
}

func (s *KPIService) ByCategory(ctx context.Context, category models.KPICategory, orgID *uuid.UUID, params utils.PaginationParams) ([]models.KPI, int64, error) {
	if !category.Valid() {
		return nil, 0, invalidInput("unknown kpi category %q", category)
	}
	return s.List(ctx, KPIFilter{PaginationParams: params, OrganizationID: orgID, Category: category})
}

func (s *KPIService) Create(ctx context.Context, req *CreateKPIRequest) (*models.KPI, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists[models.Organization](db, "organization", req.OrganizationID); err != nil {
		return nil, err
	}

	kpi := &models.KPI{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Value:          *req.Value,
		Target:         req.Target,
		Unit:           req.Unit,
		Date:           time.Now(),
		Period:         req.Period,
		Trend:          req.Trend,
		Status:         req.Status,
		DataSource:     req.DataSource,
		Notes:          req.Notes,
		OrganizationID: req.OrganizationID,
	}
	if req.Date != nil {
		kpi.Date = *req.Date
	}
	if kpi.Period == "" {
		kpi.Period = models.KPIPeriodMonthly
	}
	if kpi.Status == "" && kpi.Target != nil {
		kpi.Status = KPIStatusFor(kpi.Value, *kpi.Target)
	}

	if err := db.Create(kpi).Error; err != nil {
		return nil, fmt.Errorf("failed to create kpi: %w", err)
	}
	return kpi, nil
}

func (s *KPIService) Update(ctx context.Context, id uuid.UUID, req *UpdateKPIRequest) (*models.KPI, error) {
	db := s.db.WithContext(ctx)
	if req.OrganizationID != nil {
		if err := ensureExists[models.Organization](db, "organization", *req.OrganizationID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "category", req.Category)
	setIf(updates, "description", req.Description)
	setIf(updates, "value", req.Value)
	setIf(updates, "target", req.Target)
	setIf(updates, "unit", req.Unit)
	setIf(updates, "date", req.Date)
	setIf(updates, "period", req.Period)
	setIf(updates, "trend", req.Trend)
	setIf(updates, "status", req.Status)
	setIf(updates, "data_source", req.DataSource)
	setIf(updates, "notes", req.Notes)
	setIf(updates, "organization_id", req.OrganizationID)

	if err := updateByID[models.KPI](db, "kpi", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *KPIService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.KPI](s.db.WithContext(ctx), "kpi", id)
}

// DCFPercentage is the share of the organization's products verified
// deforestation- and conversion-free.
func (s *KPIService) DCFPercentage(ctx context.Context, orgID uuid.UUID) (*KPIResult, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Organization](db, "organization", orgID); err != nil {
		return nil, err
	}

	products := db.Model(&models.Product{}).
		Where("supplier_id IN (?)", db.Model(&models.Supplier{}).Select("id").Where("organization_id = ?", orgID))

	var total, verified int64
	if err := products.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := products.Session(&gorm.Session{}).
		Where("is_verified = ? AND is_deforestation_free = ?", true, true).
		Count(&verified).Error; err != nil {
		return nil, fmt.Errorf("failed to count verified products: %w", err)
	}

	return s.result(db, orgID, KPINameDCF, Percentage(verified, total), dcfTarget)
}

// GrievanceResolutionRate is the share of the organization's grievances resolved.
func (s *KPIService) GrievanceResolutionRate(ctx context.Context, orgID uuid.UUID) (*KPIResult, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Organization](db, "organization", orgID); err != nil {
		return nil, err
	}

	grievances := db.Model(&models.Grievance{}).
		Where("supplier_id IN (?)", db.Model(&models.Supplier{}).Select("id").Where("organization_id = ?", orgID))

	var total, resolved int64
	if err := grievances.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count grievances: %w", err)
	}
	if err := grievances.Session(&gorm.Session{}).
		Where("status = ?", models.GrievanceStatusResolved).
		Count(&resolved).Error; err != nil {
		return nil, fmt.Errorf("failed to count resolved grievances: %w", err)
	}

	return s.result(db, orgID, KPINameGrievanceResolution, Percentage(resolved, total), grievanceResolutionTarget)
}

// SupplierSustainabilityRate is the share of the organization's suppliers
// with a sustainability plan.
func (s *KPIService) SupplierSustainabilityRate(ctx context.Context, orgID uuid.UUID) (*KPIResult, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Organization](db, "organization", orgID); err != nil {
		return nil, err
	}

	suppliers := db.Model(&models.Supplier{}).Where("organization_id = ?", orgID)

	var total, planned int64
	if err := suppliers.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}
	if err := suppliers.Session(&gorm.Session{}).
		Where("has_sustainability_plan = ?", true).
		Count(&planned).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers with plans: %w", err)
	}

	return s.result(db, orgID, KPINameSupplierSustainability, Percentage(planned, total), supplierSustainabilityTarget)
}

func (s *KPIService) result(db *gorm.DB, orgID uuid.UUID, name string, value, target float64) (*KPIResult, error) {
	var previous models.KPI
	trend := models.TrendStable
	err := db.Where("organization_id = ? AND name = ?", orgID, name).Order("date DESC").First(&previous).Error
	switch {
	case err == nil:
		trend = TrendFor(previous.Value, value)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load previous kpi: %w", err)
	}

	return &KPIResult{
		OrganizationID: orgID,
		KPIName:        name,
		Value:          value,
		Target:         target,
		Unit:           "%",
		Date:           time.Now(),
		Trend:          trend,
		Status:         KPIStatusFor(value, target),
	}, nil
}

// Percentage returns part/total on a 0..100 scale rounded to one decimal. A
// zero total yields 0.
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func TrendFor(previous, current float64) models.Trend {
	switch {
	case current-previous > trendTolerance:
		return models.TrendIncreasing
	case previous-current > trendTolerance:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func KPIStatusFor(value, target float64) models.KPIStatus {
	switch {
	case value >= target:
		return models.KPIStatusOnTrack
	case value >= target*atRiskShare:
		return models.KPIStatusAtRisk
	default:
		return models.KPIStatusOffTrack
	}
}
