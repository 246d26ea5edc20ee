// Package seed loads the demo dataset and resets the schema.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
)

// Summary counts the rows written by a seed run.
type Summary struct {
	Organizations int `json:"organizations"`
	Users         int `json:"users"`
	Suppliers     int `json:"suppliers"`
	Products      int `json:"products"`
	Nodes         int `json:"nodes"`
	Connections   int `json:"connections"`
	Grievances    int `json:"grievances"`
	Alerts        int `json:"satellite_alerts"`
	KPIs          int `json:"kpis"`
	Surveys       int `json:"surveys"`
	Questions     int `json:"questions"`
	Responses     int `json:"responses"`
}

type Seeder struct {
	db      *gorm.DB
	dataset *Dataset
	now     func() time.Time
}

func NewSeeder(db *gorm.DB) (*Seeder, error) {
	ds, err := LoadDataset()
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, dataset: ds, now: time.Now}, nil
}

// Run writes the dataset in foreign-key order inside one transaction. It
// refuses to run when any of the dataset's users already exist.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)

	usernames := make([]string, len(s.dataset.Users))
	for i, u := range s.dataset.Users {
		usernames[i] = u.Username
	}
	var existing int64
	if err := db.Unscoped().Model(&models.User{}).Where("username IN ?", usernames).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check seed users: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: database is already seeded", services.ErrConflict)
	}

	var summary *Summary
	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		var err error
		summary, err = s.write(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("summary", summary).Info("Database seeded")
	return summary, nil
}

// Reset drops and recreates every table.
func (s *Seeder) Reset(ctx context.Context) error {
	return database.Reset(s.db.WithContext(ctx))
}

func (s *Seeder) write(tx *gorm.DB) (*Summary, error) {
	ds := s.dataset
	now := s.now()
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	optionalDaysAgo := func(n *int) *time.Time {
		if n == nil {
			return nil
		}
		t := daysAgo(*n)
		return &t
	}

	orgs := make([]models.Organization, len(ds.Organizations))
	for i, o := range ds.Organizations {
		orgs[i] = models.Organization{
			Name:         o.Name,
			Type:         models.OrganizationType(o.Type),
			Country:      o.Country,
			Address:      o.Address,
			ContactEmail: o.ContactEmail,
			ContactPhone: o.ContactPhone,
			Website:      o.Website,
			IsActive:     true,
		}
	}
	if err := create(tx, "organizations", &orgs); err != nil {
		return nil, err
	}

	// One hash serves every demo user.
	var hashed models.User
	if err := hashed.SetPassword(ds.Password); err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	users := make([]models.User, len(ds.Users))
	for i, u := range ds.Users {
		orgID := orgs[u.Organization].ID
		users[i] = models.User{
			Username:       u.Username,
			Email:          u.Email,
			PasswordHash:   hashed.PasswordHash,
			Role:           models.Role(u.Role),
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			IsActive:       true,
			OrganizationID: &orgID,
		}
	}
	if err := create(tx, "users", &users); err != nil {
		return nil, err
	}

	suppliers := make([]models.Supplier, len(ds.Suppliers))
	for i, sp := range ds.Suppliers {
		suppliers[i] = models.Supplier{
			Name:                  sp.Name,
			Type:                  models.SupplierType(sp.Type),
			Country:               sp.Country,
			Region:                sp.Region,
			Coordinates:           sp.Location.point(),
			ContactPerson:         sp.ContactPerson,
			ContactEmail:          sp.ContactEmail,
			ContactPhone:          sp.ContactPhone,
			Certifications:        datatypes.JSONSlice[string](sp.Certifications),
			RiskScore:             sp.RiskScore,
			HasSustainabilityPlan: sp.HasSustainabilityPlan,
			IsActive:              true,
			OrganizationID:        orgs[sp.Organization].ID,
		}
	}
	if err := create(tx, "suppliers", &suppliers); err != nil {
		return nil, err
	}

	products := make([]models.Product, len(ds.Products))
	for i, p := range ds.Products {
		products[i] = models.Product{
			Name:                p.Name,
			Category:            p.Category,
			Description:         p.Description,
			Certifications:      datatypes.JSONSlice[string](p.Certifications),
			IsDeforestationFree: p.IsDeforestationFree,
			IsActive:            true,
			SupplierID:          suppliers[p.Supplier].ID,
		}
		// A verification method marks the product as verified.
		if p.VerificationMethod != "" {
			verifiedAt := now
			products[i].IsVerified = true
			products[i].VerificationDate = &verifiedAt
			products[i].VerificationMethod = p.VerificationMethod
		}
	}
	if err := create(tx, "products", &products); err != nil {
		return nil, err
	}

	nodes := make([]models.SupplyChainNode, len(ds.Nodes))
	for i, n := range ds.Nodes {
		nodes[i] = models.SupplyChainNode{
			Name:          n.Name,
			Type:          models.NodeType(n.Type),
			Country:       n.Country,
			Region:        n.Region,
			Coordinates:   n.Location.point(),
			Address:       n.Address,
			ContactPerson: n.ContactPerson,
			ContactEmail:  n.ContactEmail,
			ContactPhone:  n.ContactPhone,
			RiskLevel:     models.RiskLevel(n.RiskLevel),
			IsActive:      true,
			ProductID:     products[n.Product].ID,
		}
	}
	if err := create(tx, "nodes", &nodes); err != nil {
		return nil, err
	}

	connections := make([]models.Connection, len(ds.Connections))
	for i, c := range ds.Connections {
		connections[i] = models.Connection{
			SourceID:        nodes[c.Source].ID,
			TargetID:        nodes[c.Target].ID,
			Type:            models.ConnectionType(c.Type),
			TransportMethod: c.TransportMethod,
			Distance:        c.Distance,
			CarbonFootprint: c.CarbonFootprint,
			IsVerified:      c.IsVerified,
			IsActive:        true,
		}
		if c.IsVerified {
			verifiedAt := now
			connections[i].VerificationDate = &verifiedAt
		}
	}
	if err := create(tx, "connections", &connections); err != nil {
		return nil, err
	}

	grievances := make([]models.Grievance, len(ds.Grievances))
	for i, g := range ds.Grievances {
		grievances[i] = models.Grievance{
			Title:           g.Title,
			Date:            daysAgo(g.DaysAgo),
			Source:          g.Source,
			Type:            models.GrievanceType(g.Type),
			Description:     g.Description,
			Location:        g.LocationName,
			Coordinates:     g.Location.point(),
			Status:          models.GrievanceStatus(g.Status),
			Severity:        models.Severity(g.Severity),
			ResolutionNotes: g.ResolutionNotes,
			ResolutionDate:  optionalDaysAgo(g.ResolvedDaysAgo),
			SupplierID:      suppliers[g.Supplier].ID,
		}
	}
	if err := create(tx, "grievances", &grievances); err != nil {
		return nil, err
	}

	alerts := make([]models.SatelliteAlert, len(ds.Alerts))
	for i, a := range ds.Alerts {
		alerts[i] = models.SatelliteAlert{
			AlertDate:   daysAgo(a.DaysAgo),
			Coordinates: a.Location.point(),
			Region:      a.Region,
			Country:     a.Country,
			Type:        models.AlertType(a.Type),
			Severity:    models.Severity(a.Severity),
			Area:        a.Area,
			Confidence:  a.Confidence,
			Source:      a.Source,
			ImageURL:    a.ImageURL,
			Status:      models.AlertStatus(a.Status),
			Notes:       a.Notes,
		}
	}
	if err := create(tx, "satellite alerts", &alerts); err != nil {
		return nil, err
	}

	kpis := make([]models.KPI, len(ds.KPIs))
	for i, k := range ds.KPIs {
		kpis[i] = models.KPI{
			Name:           k.Name,
			Category:       models.KPICategory(k.Category),
			Description:    k.Description,
			Value:          k.Value,
			Target:         k.Target,
			Unit:           k.Unit,
			Date:           now,
			Period:         models.KPIPeriod(k.Period),
			Trend:          models.Trend(k.Trend),
			Status:         models.KPIStatus(k.Status),
			DataSource:     k.DataSource,
			OrganizationID: orgs[k.Organization].ID,
		}
	}
	if err := create(tx, "kpis", &kpis); err != nil {
		return nil, err
	}

	surveys := make([]models.Survey, len(ds.Surveys))
	for i, sv := range ds.Surveys {
		surveys[i] = models.Survey{
			Title:             sv.Title,
			Description:       sv.Description,
			Status:            models.SurveyStatus(sv.Status),
			StartDate:         optionalDaysAgo(sv.StartDaysAgo),
			EndDate:           optionalDaysAgo(sv.EndDaysAgo),
			TargetAudience:    models.TargetAudience(sv.TargetAudience),
			ResponseRate:      sv.ResponseRate,
			IsRequired:        sv.IsRequired,
			ReminderFrequency: models.ReminderFrequency(sv.ReminderFrequency),
			OrganizationID:    orgs[sv.Organization].ID,
		}
	}
	if err := create(tx, "surveys", &surveys); err != nil {
		return nil, err
	}

	// questionIDs[survey][position]
	questionIDs := make([][]uuid.UUID, len(ds.Surveys))
	questions := make([]models.Question, 0, ds.QuestionCount())
	for si, sv := range ds.Surveys {
		for qi, q := range sv.Questions {
			question := models.Question{
				Text:     q.Text,
				Type:     models.QuestionType(q.Type),
				Options:  datatypes.JSONSlice[string](q.Options),
				Required: q.Required,
				Order:    qi,
				HelpText: q.HelpText,
				SurveyID: surveys[si].ID,
			}
			question.ID = uuid.New()
			if q.Validation != nil {
				raw, err := json.Marshal(q.Validation)
				if err != nil {
					return nil, fmt.Errorf("failed to encode question validation: %w", err)
				}
				question.Validation = datatypes.JSON(raw)
			}
			questionIDs[si] = append(questionIDs[si], question.ID)
			questions = append(questions, question)
		}
	}
	if err := create(tx, "questions", &questions); err != nil {
		return nil, err
	}

	responses := make([]models.SurveyResponse, len(ds.Responses))
	for i, r := range ds.Responses {
		responses[i] = models.SurveyResponse{
			Value:       r.Value,
			FileURL:     r.FileURL,
			SubmittedAt: daysAgo(r.DaysAgo),
			Status:      models.ResponseStatusApproved,
			ReviewedAt:  optionalDaysAgo(r.ReviewedDaysAgo),
			QuestionID:  questionIDs[r.Survey][r.Question],
			SupplierID:  suppliers[r.Supplier].ID,
		}
		if r.Reviewer != nil {
			reviewer := users[*r.Reviewer].ID
			responses[i].ReviewedBy = &reviewer
		}
	}
	if err := create(tx, "responses", &responses); err != nil {
		return nil, err
	}

	return &Summary{
		Organizations: len(orgs),
		Users:         len(users),
		Suppliers:     len(suppliers),
		Products:      len(products),
		Nodes:         len(nodes),
		Connections:   len(connections),
		Grievances:    len(grievances),
		Alerts:        len(alerts),
		KPIs:          len(kpis),
		Surveys:       len(surveys),
		Questions:     len(questions),
		Responses:     len(responses),
	}, nil
}

func create[T any](tx *gorm.DB, what string, rows *[]T) error {
	if len(*rows) == 0 {
		return nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("failed to seed %s: %w", what, err)
	}
	return nil
}

func (l *location) point() *models.GeoPoint {
	if l == nil {
		return nil
	}
	return models.NewGeoPoint(l.Lat, l.Lng)
}
