// internal/services/grievance_service.go
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

type GrievanceService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateGrievanceRequest struct {
	Title           string                 `json:"title" validate:"required,max=255"`
	Date            time.Time              `json:"date" validate:"required"`
	Source          string                 `json:"source" validate:"required,max=255"`
	Type            models.GrievanceType   `json:"type" validate:"required,oneof=deforestation labor land_rights pollution other"`
	Description     string                 `json:"description,omitempty"`
	Location        string                 `json:"location,omitempty" validate:"max=255"`
	Coordinates     *models.GeoPoint       `json:"coordinates,omitempty"`
	Status          models.GrievanceStatus `json:"status,omitempty" validate:"omitempty,oneof=reported under_investigation resolved dismissed"`
	Severity        models.Severity        `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	ResolutionNotes string                 `json:"resolution_notes,omitempty"`
	ResolutionDate  *time.Time             `json:"resolution_date,omitempty"`
	Attachments     []string               `json:"attachments,omitempty"`
	SupplierID      uuid.UUID              `json:"supplier_id" validate:"required"`
}

type UpdateGrievanceRequest struct {
	Title           *string                 `json:"title,omitempty" validate:"omitempty,max=255"`
	Date            *time.Time              `json:"date,omitempty"`
	Source          *string                 `json:"source,omitempty" validate:"omitempty,max=255"`
	Type            *models.GrievanceType   `json:"type,omitempty" validate:"omitempty,oneof=deforestation labor land_rights pollution other"`
	Description     *string                 `json:"description,omitempty"`
	Location        *string                 `json:"location,omitempty" validate:"omitempty,max=255"`
	Coordinates     *models.GeoPoint        `json:"coordinates,omitempty"`
	Status          *models.GrievanceStatus `json:"status,omitempty" validate:"omitempty,oneof=reported under_investigation resolved dismissed"`
	Severity        *models.Severity        `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	ResolutionNotes *string                 `json:"resolution_notes,omitempty"`
	ResolutionDate  *time.Time              `json:"resolution_date,omitempty"`
	Attachments     *[]string               `json:"attachments,omitempty"`
	SupplierID      *uuid.UUID              `json:"supplier_id,omitempty"`
}

type GrievanceFilter struct {
	utils.PaginationParams
	SupplierID *uuid.UUID
	Status     models.GrievanceStatus
	Severity   models.Severity
	Type       models.GrievanceType
}

// HeatmapPoint is one weighted grievance location.
type HeatmapPoint struct {
	Lat    float64              `json:"lat"`
	Lng    float64              `json:"lng"`
	Weight float64              `json:"weight"`
	Type   models.GrievanceType `json:"type"`
}

var grievanceSortFields = []string{"created_at", "date", "severity", "status", "title"}

func NewGrievanceService(db *gorm.DB, notificationService *NotificationService) *GrievanceService {
	return &GrievanceService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *GrievanceService) List(ctx context.Context, filter GrievanceFilter) ([]models.Grievance, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", searchPattern(filter.Search))
	}
	return paginate[models.Grievance](query, filter.PaginationParams, grievanceSortFields, "Supplier")
}

func (s *GrievanceService) Get(ctx context.Context, id uuid.UUID) (*models.Grievance, error) {
	return findByID[models.Grievance](s.db.WithContext(ctx), "grievance", id, "Supplier")
}

func (s *GrievanceService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params utils.PaginationParams) ([]models.Grievance, int64, error) {
	if err := ensureFound[models.Supplier](s.db.WithContext(ctx), "supplier", supplierID); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, GrievanceFilter{PaginationParams: params, SupplierID: &supplierID})
}

func (s *GrievanceService) Create(ctx context.Context, req *CreateGrievanceRequest) (*models.Grievance, error) {
	db := s.db.WithContext(ctx)

	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}
	if err := ensureExists[models.Supplier](db, "supplier", req.SupplierID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.GrievanceStatusReported
	}
	severity := req.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}

	grievance := &models.Grievance{
		Title:           req.Title,
		Date:            req.Date,
		Source:          req.Source,
		Type:            req.Type,
		Description:     req.Description,
		Location:        req.Location,
		Coordinates:     req.Coordinates,
		Status:          status,
		Severity:        severity,
		ResolutionNotes: req.ResolutionNotes,
		ResolutionDate:  req.ResolutionDate,
		Attachments:     stringList(req.Attachments),
		SupplierID:      req.SupplierID,
	}

	if err := db.Create(grievance).Error; err != nil {
		return nil, fmt.Errorf("failed to create grievance: %w", err)
	}

	s.notificationService.GrievanceReported(db, grievance)
	return grievance, nil
}

func (s *GrievanceService) Update(ctx context.Context, id uuid.UUID, req *UpdateGrievanceRequest) (*models.Grievance, error) {
	db := s.db.WithContext(ctx)

	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}
	if req.SupplierID != nil {
		if err := ensureExists[models.Supplier](db, "supplier", *req.SupplierID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "title", req.Title)
	setIf(updates, "date", req.Date)
	setIf(updates, "source", req.Source)
	setIf(updates, "type", req.Type)
	setIf(updates, "description", req.Description)
	setIf(updates, "location", req.Location)
	setIf(updates, "status", req.Status)
	setIf(updates, "severity", req.Severity)
	setIf(updates, "resolution_notes", req.ResolutionNotes)
	setIf(updates, "resolution_date", req.ResolutionDate)
	setIf(updates, "supplier_id", req.SupplierID)
	if req.Coordinates != nil {
		updates["coordinates"] = req.Coordinates
	}
	if req.Attachments != nil {
		updates["attachments"] = stringList(*req.Attachments)
	}

	// Resolving without an explicit date stamps it now.
	if req.Status != nil && *req.Status == models.GrievanceStatusResolved && req.ResolutionDate == nil {
		updates["resolution_date"] = time.Now()
	}

	if err := updateByID[models.Grievance](db, "grievance", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *GrievanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Grievance](s.db.WithContext(ctx), "grievance", id)
}

// Heatmap returns every grievance that has coordinates as a weighted point.
func (s *GrievanceService) Heatmap(ctx context.Context) ([]HeatmapPoint, error) {
	var grievances []models.Grievance
	if err := s.db.WithContext(ctx).
		Select("id", "coordinates", "severity", "status", "type").
		Where("coordinates IS NOT NULL").
		Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("failed to load grievances: %w", err)
	}

	points := make([]HeatmapPoint, 0, len(grievances))
	for _, g := range grievances {
		if g.Coordinates.IsZero() {
			continue
		}
		points = append(points, HeatmapPoint{
			Lat:    g.Coordinates.Lat(),
			Lng:    g.Coordinates.Lng(),
			Weight: HeatmapWeight(g.Severity, g.Status),
			Type:   g.Type,
		})
	}
	return points, nil
}

// HeatmapWeight is the severity weight, halved once a grievance is resolved.
func HeatmapWeight(severity models.Severity, status models.GrievanceStatus) float64 {
	weight := severity.Weight()
	if status == models.GrievanceStatusResolved {
		weight /= 2
	}
	return weight
}
