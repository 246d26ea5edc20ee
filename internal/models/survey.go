// internal/models/survey.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Survey struct {
	BaseModel
	Title             string            `json:"title" gorm:"size:255;not null"`
	Description       string            `json:"description" gorm:"type:text"`
	Status            SurveyStatus      `json:"status" gorm:"type:varchar(20);not null;index"`
	StartDate         *time.Time        `json:"start_date"`
	EndDate           *time.Time        `json:"end_date"`
	TargetAudience    TargetAudience    `json:"target_audience" gorm:"type:varchar(30)"`
	ResponseRate      float64           `json:"response_rate"`
	IsRequired        bool              `json:"is_required"`
	ReminderFrequency ReminderFrequency `json:"reminder_frequency" gorm:"type:varchar(20)"`
	Notes             string            `json:"notes" gorm:"type:text"`
	OrganizationID    uuid.UUID         `json:"organization_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Questions    []Question    `json:"questions,omitempty" gorm:"foreignKey:SurveyID"`
}

type Question struct {
	BaseModel
	Text       string                      `json:"text" gorm:"type:text;not null"`
	Type       QuestionType                `json:"type" gorm:"type:varchar(20);not null"`
	Options    datatypes.JSONSlice[string] `json:"options"`
	Required   bool                        `json:"required"`
	Order      int                         `json:"order" gorm:"column:sort_order;not null;default:0"`
	HelpText   string                      `json:"help_text" gorm:"type:text"`
	Validation datatypes.JSON              `json:"validation"`
	SurveyID   uuid.UUID                   `json:"survey_id" gorm:"type:uuid;not null;index"`
}

// SurveyResponse is one supplier's answer to one question.
type SurveyResponse struct {
	BaseModel
	Value       string         `json:"value" gorm:"type:text"`
	FileURL     string         `json:"file_url" gorm:"size:500"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Status      ResponseStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	Notes       string         `json:"notes" gorm:"type:text"`
	ReviewedBy  *uuid.UUID     `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt  *time.Time     `json:"reviewed_at"`
	QuestionID  uuid.UUID      `json:"question_id" gorm:"type:uuid;not null;index"`
	SupplierID  uuid.UUID      `json:"supplier_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Reviewer *User     `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}
