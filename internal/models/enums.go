// internal/models/enums.go
package models

import "slices"

type OrganizationType string

const (
	OrganizationTypeBrand      OrganizationType = "brand"
	OrganizationTypeSupplier   OrganizationType = "supplier"
	OrganizationTypeNGO        OrganizationType = "ngo"
	OrganizationTypeGovernment OrganizationType = "government"
)

func (t OrganizationType) Valid() bool {
	return slices.Contains([]OrganizationType{
		OrganizationTypeBrand, OrganizationTypeSupplier, OrganizationTypeNGO, OrganizationTypeGovernment,
	}, t)
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAnalyst  Role = "analyst"
	RoleSupplier Role = "supplier"
	RolePartner  Role = "partner"
)

// Roles lists every assignable user role.
var Roles = []Role{RoleAdmin, RoleAnalyst, RoleSupplier, RolePartner}

func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

type SupplierType string

const (
	SupplierTypeProducer     SupplierType = "producer"
	SupplierTypeProcessor    SupplierType = "processor"
	SupplierTypeManufacturer SupplierType = "manufacturer"
	SupplierTypeDistributor  SupplierType = "distributor"
)

func (t SupplierType) Valid() bool {
	return slices.Contains([]SupplierType{
		SupplierTypeProducer, SupplierTypeProcessor, SupplierTypeManufacturer, SupplierTypeDistributor,
	}, t)
}

type NodeType string

const (
	NodeTypeSource        NodeType = "source"
	NodeTypeProcessing    NodeType = "processing"
	NodeTypeManufacturing NodeType = "manufacturing"
	NodeTypeDistribution  NodeType = "distribution"
	NodeTypeRetail        NodeType = "retail"
)

func (t NodeType) Valid() bool {
	return slices.Contains([]NodeType{
		NodeTypeSource, NodeTypeProcessing, NodeTypeManufacturing, NodeTypeDistribution, NodeTypeRetail,
	}, t)
}

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

func (l RiskLevel) Valid() bool {
	return slices.Contains([]RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh}, l)
}

// RiskLevelFor buckets a risk score: below 0.3 is low, below 0.7 medium.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RiskLevelLow
	case score < 0.7:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

type ConnectionType string

const (
	ConnectionTypeDirect    ConnectionType = "direct"
	ConnectionTypeIndirect  ConnectionType = "indirect"
	ConnectionTypePotential ConnectionType = "potential"
)

func (t ConnectionType) Valid() bool {
	return slices.Contains([]ConnectionType{ConnectionTypeDirect, ConnectionTypeIndirect, ConnectionTypePotential}, t)
}

type GrievanceType string

const (
	GrievanceTypeDeforestation GrievanceType = "deforestation"
	GrievanceTypeLabor         GrievanceType = "labor"
	GrievanceTypeLandRights    GrievanceType = "land_rights"
	GrievanceTypePollution     GrievanceType = "pollution"
	GrievanceTypeOther         GrievanceType = "other"
)

func (t GrievanceType) Valid() bool {
	return slices.Contains([]GrievanceType{
		GrievanceTypeDeforestation, GrievanceTypeLabor, GrievanceTypeLandRights, GrievanceTypePollution, GrievanceTypeOther,
	}, t)
}

type GrievanceStatus string

const (
	GrievanceStatusReported           GrievanceStatus = "reported"
	GrievanceStatusUnderInvestigation GrievanceStatus = "under_investigation"
	GrievanceStatusResolved           GrievanceStatus = "resolved"
	GrievanceStatusDismissed          GrievanceStatus = "dismissed"
)

func (s GrievanceStatus) Valid() bool {
	return slices.Contains([]GrievanceStatus{
		GrievanceStatusReported, GrievanceStatusUnderInvestigation, GrievanceStatusResolved, GrievanceStatusDismissed,
	}, s)
}

// Open reports whether the grievance still needs attention.
func (s GrievanceStatus) Open() bool {
	return s == GrievanceStatusReported || s == GrievanceStatusUnderInvestigation
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) Valid() bool {
	return slices.Contains(Severities, s)
}

// Weight maps a severity onto (0,1] for heatmaps and risk scoring.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityLow:
		return 0.3
	case SeverityMedium:
		return 0.6
	case SeverityHigh:
		return 0.8
	case SeverityCritical:
		return 1.0
	default:
		return 0.5
	}
}

type AlertType string

const (
	AlertTypeDeforestation   AlertType = "deforestation"
	AlertTypeFire            AlertType = "fire"
	AlertTypeLandcoverChange AlertType = "landcover_change"
	AlertTypeOther           AlertType = "other"
)

var AlertTypes = []AlertType{AlertTypeDeforestation, AlertTypeFire, AlertTypeLandcoverChange, AlertTypeOther}

func (t AlertType) Valid() bool {
	return slices.Contains(AlertTypes, t)
}

type AlertStatus string

const (
	AlertStatusNew           AlertStatus = "new"
	AlertStatusInvestigating AlertStatus = "investigating"
	AlertStatusConfirmed     AlertStatus = "confirmed"
	AlertStatusFalsePositive AlertStatus = "false_positive"
)

var AlertStatuses = []AlertStatus{AlertStatusNew, AlertStatusInvestigating, AlertStatusConfirmed, AlertStatusFalsePositive}

func (s AlertStatus) Valid() bool {
	return slices.Contains(AlertStatuses, s)
}

type KPICategory string

const (
	KPICategoryEnvironmental KPICategory = "environmental"
	KPICategorySocial        KPICategory = "social"
	KPICategoryGovernance    KPICategory = "governance"
	KPICategoryEconomic      KPICategory = "economic"
)

func (c KPICategory) Valid() bool {
	return slices.Contains([]KPICategory{
		KPICategoryEnvironmental, KPICategorySocial, KPICategoryGovernance, KPICategoryEconomic,
	}, c)
}

type KPIPeriod string

const (
	KPIPeriodDaily     KPIPeriod = "daily"
	KPIPeriodWeekly    KPIPeriod = "weekly"
	KPIPeriodMonthly   KPIPeriod = "monthly"
	KPIPeriodQuarterly KPIPeriod = "quarterly"
	KPIPeriodYearly    KPIPeriod = "yearly"
)

func (p KPIPeriod) Valid() bool {
	return slices.Contains([]KPIPeriod{
		KPIPeriodDaily, KPIPeriodWeekly, KPIPeriodMonthly, KPIPeriodQuarterly, KPIPeriodYearly,
	}, p)
}

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

func (t Trend) Valid() bool {
	return slices.Contains([]Trend{TrendIncreasing, TrendDecreasing, TrendStable}, t)
}

type KPIStatus string

const (
	KPIStatusOnTrack  KPIStatus = "on_track"
	KPIStatusAtRisk   KPIStatus = "at_risk"
	KPIStatusOffTrack KPIStatus = "off_track"
)

func (s KPIStatus) Valid() bool {
	return slices.Contains([]KPIStatus{KPIStatusOnTrack, KPIStatusAtRisk, KPIStatusOffTrack}, s)
}

type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "draft"
	SurveyStatusActive SurveyStatus = "active"
	SurveyStatusClosed SurveyStatus = "closed"
)

func (s SurveyStatus) Valid() bool {
	return slices.Contains([]SurveyStatus{SurveyStatusDraft, SurveyStatusActive, SurveyStatusClosed}, s)
}

type TargetAudience string

const (
	TargetAudienceAllSuppliers      TargetAudience = "all_suppliers"
	TargetAudienceHighRiskSuppliers TargetAudience = "high_risk_suppliers"
	TargetAudienceSpecificSuppliers TargetAudience = "specific_suppliers"
)

func (a TargetAudience) Valid() bool {
	return slices.Contains([]TargetAudience{
		TargetAudienceAllSuppliers, TargetAudienceHighRiskSuppliers, TargetAudienceSpecificSuppliers,
	}, a)
}

type ReminderFrequency string

const (
	ReminderFrequencyNone     ReminderFrequency = "none"
	ReminderFrequencyWeekly   ReminderFrequency = "weekly"
	ReminderFrequencyBiweekly ReminderFrequency = "biweekly"
	ReminderFrequencyMonthly  ReminderFrequency = "monthly"
)

func (f ReminderFrequency) Valid() bool {
	return slices.Contains([]ReminderFrequency{
		ReminderFrequencyNone, ReminderFrequencyWeekly, ReminderFrequencyBiweekly, ReminderFrequencyMonthly,
	}, f)
}

type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeBoolean        QuestionType = "boolean"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeDate           QuestionType = "date"
	QuestionTypeFileUpload     QuestionType = "file_upload"
)

func (t QuestionType) Valid() bool {
	return slices.Contains([]QuestionType{
		QuestionTypeText, QuestionTypeNumber, QuestionTypeBoolean, QuestionTypeMultipleChoice,
		QuestionTypeSingleChoice, QuestionTypeDate, QuestionTypeFileUpload,
	}, t)
}

type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "draft"
	ResponseStatusSubmitted ResponseStatus = "submitted"
	ResponseStatusApproved  ResponseStatus = "approved"
	ResponseStatusRejected  ResponseStatus = "rejected"
)

func (s ResponseStatus) Valid() bool {
	return slices.Contains([]ResponseStatus{
		ResponseStatusDraft, ResponseStatusSubmitted, ResponseStatusApproved, ResponseStatusRejected,
	}, s)
}
