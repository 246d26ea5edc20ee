// internal/services/survey_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SurveyService struct {
	db *gorm.DB
}

type CreateSurveyRequest struct {
	Title             string                   `json:"title" validate:"required,max=255"`
	Description       string                   `json:"description,omitempty"`
	Status            models.SurveyStatus      `json:"status,omitempty" validate:"omitempty,oneof=draft active closed"`
	StartDate         *time.Time               `json:"start_date,omitempty"`
	EndDate           *time.Time               `json:"end_date,omitempty"`
	TargetAudience    models.TargetAudience    `json:"target_audience,omitempty" validate:"omitempty,oneof=all_suppliers high_risk_suppliers specific_suppliers"`
	IsRequired        bool                     `json:"is_required,omitempty"`
	ReminderFrequency models.ReminderFrequency `json:"reminder_frequency,omitempty" validate:"omitempty,oneof=none weekly biweekly monthly"`
	Notes             string                   `json:"notes,omitempty"`
	OrganizationID    uuid.UUID                `json:"organization_id" validate:"required"`
}

type UpdateSurveyRequest struct {
	Title             *string                   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description       *string                   `json:"description,omitempty"`
	Status            *models.SurveyStatus      `json:"status,omitempty" validate:"omitempty,oneof=draft active closed"`
	StartDate         *time.Time                `json:"start_date,omitempty"`
	EndDate           *time.Time                `json:"end_date,omitempty"`
	TargetAudience    *models.TargetAudience    `json:"target_audience,omitempty" validate:"omitempty,oneof=all_suppliers high_risk_suppliers specific_suppliers"`
	IsRequired        *bool                     `json:"is_required,omitempty"`
	ReminderFrequency *models.ReminderFrequency `json:"reminder_frequency,omitempty" validate:"omitempty,oneof=none weekly biweekly monthly"`
	Notes             *string                   `json:"notes,omitempty"`
	OrganizationID    *uuid.UUID                `json:"organization_id,omitempty"`
}

type CreateQuestionRequest struct {
	Text       string              `json:"text" validate:"required"`
	Type       models.QuestionType `json:"type" validate:"required,oneof=text number boolean multiple_choice single_choice date file_upload"`
	Options    []string            `json:"options,omitempty"`
	Required   bool                `json:"required,omitempty"`
	Order      *int                `json:"order,omitempty" validate:"omitempty,gte=0"`
	HelpText   string              `json:"help_text,omitempty"`
	Validation datatypes.JSON      `json:"validation,omitempty"`
}

type ResponseItem struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Value      string    `json:"value,omitempty"`
	FileURL    string    `json:"file_url,omitempty" validate:"max=500"`
}

type SubmitResponsesRequest struct {
	SurveyID   uuid.UUID      `json:"survey_id" validate:"required"`
	SupplierID uuid.UUID      `json:"supplier_id" validate:"required"`
	Responses  []ResponseItem `json:"responses" validate:"required,min=1,dive"`
}

type SubmitResult struct {
	Responses    []models.SurveyResponse `json:"responses"`
	ResponseRate float64                 `json:"response_rate"`
}

type SurveyFilter struct {
	utils.PaginationParams
	OrganizationID *uuid.UUID
	Status         models.SurveyStatus
}

var surveySortFields = []string{"created_at", "title", "start_date", "end_date", "response_rate"}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db}
}

func (s *SurveyService) List(ctx context.Context, filter SurveyFilter) ([]models.Survey, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", searchPattern(filter.Search))
	}
	return paginate[models.Survey](query, filter.PaginationParams, surveySortFields, "Organization")
}

// Get loads a survey with its questions in display order.
func (s *SurveyService) Get(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "survey", ID: id}
		}
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	return &survey, nil
}

func (s *SurveyService) ByOrganization(ctx context.Context, orgID uuid.UUID, params utils.PaginationParams) ([]models.Survey, int64, error) {
	if err := ensureFound[models.Organization](s.db.WithContext(ctx), "organization", orgID); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, SurveyFilter{PaginationParams: params, OrganizationID: &orgID})
}

func (s *SurveyService) Create(ctx context.Context, req *CreateSurveyRequest) (*models.Survey, error) {
	if err := checkWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := ensureExists[models.Organization](db, "organization", req.OrganizationID); err != nil {
		return nil, err
	}

	survey := &models.Survey{
		Title:             req.Title,
		Description:       req.Description,
		Status:            req.Status,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		TargetAudience:    req.TargetAudience,
		IsRequired:        req.IsRequired,
		ReminderFrequency: req.ReminderFrequency,
		Notes:             req.Notes,
		OrganizationID:    req.OrganizationID,
	}
	if survey.Status == "" {
		survey.Status = models.SurveyStatusDraft
	}
	if survey.TargetAudience == "" {
		survey.TargetAudience = models.TargetAudienceAllSuppliers
	}
	if survey.ReminderFrequency == "" {
		survey.ReminderFrequency = models.ReminderFrequencyNone
	}

	if err := db.Create(survey).Error; err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return survey, nil
}

func (s *SurveyService) Update(ctx context.Context, id uuid.UUID, req *UpdateSurveyRequest) (*models.Survey, error) {
	db := s.db.WithContext(ctx)

	// A single supplied date is checked against the stored other end.
	if req.StartDate != nil || req.EndDate != nil {
		current, err := findByID[models.Survey](db, "survey", id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartDate, current.EndDate
		if req.StartDate != nil {
			start = req.StartDate
		}
		if req.EndDate != nil {
			end = req.EndDate
		}
		if err := checkWindow(start, end); err != nil {
			return nil, err
		}
	}

	if req.OrganizationID != nil {
		if err := ensureExists[models.Organization](db, "organization", *req.OrganizationID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "title", req.Title)
	setIf(updates, "description", req.Description)
	setIf(updates, "status", req.Status)
	setIf(updates, "start_date", req.StartDate)
	setIf(updates, "end_date", req.EndDate)
	setIf(updates, "target_audience", req.TargetAudience)
	setIf(updates, "is_required", req.IsRequired)
	setIf(updates, "reminder_frequency", req.ReminderFrequency)
	setIf(updates, "notes", req.Notes)
	setIf(updates, "organization_id", req.OrganizationID)

	if err := updateByID[models.Survey](db, "survey", id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SurveyService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Survey](s.db.WithContext(ctx), "survey", id)
}

func (s *SurveyService) AddQuestion(ctx context.Context, surveyID uuid.UUID, req *CreateQuestionRequest) (*models.Question, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Survey](db, "survey", surveyID); err != nil {
		return nil, err
	}

	question := &models.Question{
		Text:       req.Text,
		Type:       req.Type,
		Options:    stringList(req.Options),
		Required:   req.Required,
		HelpText:   req.HelpText,
		Validation: req.Validation,
		SurveyID:   surveyID,
	}

	if req.Order != nil {
		question.Order = *req.Order
	} else {
		// Append after the current last question.
		var last int
		if err := db.Model(&models.Question{}).
			Where("survey_id = ?", surveyID).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&last).Error; err != nil {
			return nil, fmt.Errorf("failed to read question order: %w", err)
		}
		question.Order = last + 1
	}

	if err := db.Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *SurveyService) ListQuestions(ctx context.Context, surveyID uuid.UUID) ([]models.Question, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Survey](db, "survey", surveyID); err != nil {
		return nil, err
	}

	questions := []models.Question{}
	if err := db.Where("survey_id = ?", surveyID).Order("sort_order ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListResponses returns every response to the survey's questions with the
// question and supplier attached.
func (s *SurveyService) ListResponses(ctx context.Context, surveyID uuid.UUID) ([]models.SurveyResponse, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Survey](db, "survey", surveyID); err != nil {
		return nil, err
	}

	responses := []models.SurveyResponse{}
	err := db.
		Where("question_id IN (?)", db.Model(&models.Question{}).Select("id").Where("survey_id = ?", surveyID)).
		Preload("Question", func(db *gorm.DB) *gorm.DB { return db.Select("id", "text", "type", "survey_id") }).
		Preload("Supplier", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "country") }).
		Order("submitted_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	return responses, nil
}

// Submit stores a supplier's answers and refreshes the survey's response
// rate. Nothing is written unless every answer targets a question of the
// survey.
func (s *SurveyService) Submit(ctx context.Context, req *SubmitResponsesRequest) (*SubmitResult, error) {
	db := s.db.WithContext(ctx)
	result := &SubmitResult{}

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		survey, err := findByID[models.Survey](tx, "survey", req.SurveyID)
		if err != nil {
			return err
		}
		if err := ensureFound[models.Supplier](tx, "supplier", req.SupplierID); err != nil {
			return err
		}

		var questionIDs []uuid.UUID
		if err := tx.Model(&models.Question{}).Where("survey_id = ?", survey.ID).Pluck("id", &questionIDs).Error; err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
		known := make(map[uuid.UUID]struct{}, len(questionIDs))
		for _, id := range questionIDs {
			known[id] = struct{}{}
		}

		now := time.Now()
		responses := make([]models.SurveyResponse, 0, len(req.Responses))
		for _, item := range req.Responses {
			if _, ok := known[item.QuestionID]; !ok {
				return invalidInput("question %s does not belong to survey %s", item.QuestionID, survey.ID)
			}
			responses = append(responses, models.SurveyResponse{
				Value:       item.Value,
				FileURL:     item.FileURL,
				SubmittedAt: now,
				Status:      models.ResponseStatusSubmitted,
				QuestionID:  item.QuestionID,
				SupplierID:  req.SupplierID,
			})
		}

		if err := tx.Create(&responses).Error; err != nil {
			return fmt.Errorf("failed to create survey responses: %w", err)
		}

		rate, err := responseRate(tx, survey)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Survey{}).Where("id = ?", survey.ID).Update("response_rate", rate).Error; err != nil {
			return fmt.Errorf("failed to update response rate: %w", err)
		}

		result.Responses = responses
		result.ResponseRate = rate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// responseRate is distinct responding suppliers over the suppliers of the
// survey's organization.
func responseRate(tx *gorm.DB, survey *models.Survey) (float64, error) {
	var total int64
	if err := tx.Model(&models.Supplier{}).Where("organization_id = ?", survey.OrganizationID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	var responded int64
	err := tx.Model(&models.SurveyResponse{}).
		Where("question_id IN (?)", tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", survey.ID)).
		Distinct("supplier_id").
		Count(&responded).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responding suppliers: %w", err)
	}

	return models.Clamp01(float64(responded) / float64(total)), nil
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalidInput("end_date must not be before start_date")
	}
	return nil
}
