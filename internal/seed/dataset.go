package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var embeddedDataset []byte

// Dataset is the demo data set. Records point at each other by index.
type Dataset struct {
	Version       int                `yaml:"version"`
	Password      string             `yaml:"password"`
	Organizations []organizationSeed `yaml:"organizations"`
	Users         []userSeed         `yaml:"users"`
	Suppliers     []supplierSeed     `yaml:"suppliers"`
	Products      []productSeed      `yaml:"products"`
	Nodes         []nodeSeed         `yaml:"nodes"`
	Connections   []connectionSeed   `yaml:"connections"`
	Grievances    []grievanceSeed    `yaml:"grievances"`
	Alerts        []alertSeed        `yaml:"alerts"`
	KPIs          []kpiSeed          `yaml:"kpis"`
	Surveys       []surveySeed       `yaml:"surveys"`
	Responses     []responseSeed     `yaml:"responses"`
}

type location struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type organizationSeed struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Country      string `yaml:"country"`
	Address      string `yaml:"address"`
	ContactEmail string `yaml:"contact_email"`
	ContactPhone string `yaml:"contact_phone"`
	Website      string `yaml:"website"`
}

type userSeed struct {
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	Role         string `yaml:"role"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	Organization int    `yaml:"organization"`
}

type supplierSeed struct {
	Name                  string    `yaml:"name"`
	Type                  string    `yaml:"type"`
	Country               string    `yaml:"country"`
	Region                string    `yaml:"region"`
	Location              *location `yaml:"location"`
	ContactPerson         string    `yaml:"contact_person"`
	ContactEmail          string    `yaml:"contact_email"`
	ContactPhone          string    `yaml:"contact_phone"`
	Certifications        []string  `yaml:"certifications"`
	RiskScore             float64   `yaml:"risk_score"`
	HasSustainabilityPlan bool      `yaml:"has_sustainability_plan"`
	Organization          int       `yaml:"organization"`
}

type productSeed struct {
	Name                string   `yaml:"name"`
	Category            string   `yaml:"category"`
	Description         string   `yaml:"description"`
	Certifications      []string `yaml:"certifications"`
	IsDeforestationFree bool     `yaml:"is_deforestation_free"`
	VerificationMethod  string   `yaml:"verification_method"`
	Supplier            int      `yaml:"supplier"`
}

type nodeSeed struct {
	Name          string    `yaml:"name"`
	Type          string    `yaml:"type"`
	Country       string    `yaml:"country"`
	Region        string    `yaml:"region"`
	Location      *location `yaml:"location"`
	Address       string    `yaml:"address"`
	ContactPerson string    `yaml:"contact_person"`
	ContactEmail  string    `yaml:"contact_email"`
	ContactPhone  string    `yaml:"contact_phone"`
	RiskLevel     string    `yaml:"risk_level"`
	Product       int       `yaml:"product"`
}

type connectionSeed struct {
	Source          int     `yaml:"source"`
	Target          int     `yaml:"target"`
	Type            string  `yaml:"type"`
	TransportMethod string  `yaml:"transport_method"`
	Distance        float64 `yaml:"distance"`
	CarbonFootprint float64 `yaml:"carbon_footprint"`
	IsVerified      bool    `yaml:"is_verified"`
}

type grievanceSeed struct {
	Title           string    `yaml:"title"`
	DaysAgo         int       `yaml:"days_ago"`
	Source          string    `yaml:"source"`
	Type            string    `yaml:"type"`
	Description     string    `yaml:"description"`
	LocationName    string    `yaml:"location_name"`
	Location        *location `yaml:"location"`
	Status          string    `yaml:"status"`
	Severity        string    `yaml:"severity"`
	ResolutionNotes string    `yaml:"resolution_notes"`
	ResolvedDaysAgo *int      `yaml:"resolved_days_ago"`
	Supplier        int       `yaml:"supplier"`
}

type alertSeed struct {
	DaysAgo    int       `yaml:"days_ago"`
	Location   *location `yaml:"location"`
	Region     string    `yaml:"region"`
	Country    string    `yaml:"country"`
	Type       string    `yaml:"type"`
	Severity   string    `yaml:"severity"`
	Area       float64   `yaml:"area"`
	Confidence float64   `yaml:"confidence"`
	Source     string    `yaml:"source"`
	ImageURL   string    `yaml:"image_url"`
	Status     string    `yaml:"status"`
	Notes      string    `yaml:"notes"`
}

type kpiSeed struct {
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	Value        float64  `yaml:"value"`
	Target       *float64 `yaml:"target"`
	Unit         string   `yaml:"unit"`
	Period       string   `yaml:"period"`
	Trend        string   `yaml:"trend"`
	Status       string   `yaml:"status"`
	DataSource   string   `yaml:"data_source"`
	Organization int      `yaml:"organization"`
}

type surveySeed struct {
	Title             string         `yaml:"title"`
	Description       string         `yaml:"description"`
	Status            string         `yaml:"status"`
	StartDaysAgo      *int           `yaml:"start_days_ago"`
	EndDaysAgo        *int           `yaml:"end_days_ago"`
	TargetAudience    string         `yaml:"target_audience"`
	ResponseRate      float64        `yaml:"response_rate"`
	IsRequired        bool           `yaml:"is_required"`
	ReminderFrequency string         `yaml:"reminder_frequency"`
	Organization      int            `yaml:"organization"`
	Questions         []questionSeed `yaml:"questions"`
}

type questionSeed struct {
	Text       string                 `yaml:"text"`
	Type       string                 `yaml:"type"`
	Options    []string               `yaml:"options"`
	Required   bool                   `yaml:"required"`
	HelpText   string                 `yaml:"help_text"`
	Validation map[string]interface{} `yaml:"validation"`
}

type responseSeed struct {
	Survey          int    `yaml:"survey"`
	Question        int    `yaml:"question"`
	Supplier        int    `yaml:"supplier"`
	Value           string `yaml:"value"`
	FileURL         string `yaml:"file_url"`
	DaysAgo         int    `yaml:"days_ago"`
	ReviewedDaysAgo *int   `yaml:"reviewed_days_ago"`
	Reviewer        *int   `yaml:"reviewer"`
}

// LoadDataset parses the embedded dataset.
func LoadDataset() (*Dataset, error) {
	return ParseDataset(embeddedDataset)
}

func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// validate checks that every index points at an earlier record.
func (ds *Dataset) validate() error {
	check := func(kind string, i, ref, n int) error {
		if ref < 0 || ref >= n {
			return fmt.Errorf("seed %s %d references index %d outside [0,%d)", kind, i, ref, n)
		}
		return nil
	}

	if ds.Password == "" {
		return fmt.Errorf("seed dataset has no password")
	}
	for i, u := range ds.Users {
		if err := check("user", i, u.Organization, len(ds.Organizations)); err != nil {
			return err
		}
	}
	for i, s := range ds.Suppliers {
		if err := check("supplier", i, s.Organization, len(ds.Organizations)); err != nil {
			return err
		}
	}
	for i, p := range ds.Products {
		if err := check("product", i, p.Supplier, len(ds.Suppliers)); err != nil {
			return err
		}
	}
	for i, n := range ds.Nodes {
		if err := check("node", i, n.Product, len(ds.Products)); err != nil {
			return err
		}
	}
	for i, c := range ds.Connections {
		if err := check("connection source", i, c.Source, len(ds.Nodes)); err != nil {
			return err
		}
		if err := check("connection target", i, c.Target, len(ds.Nodes)); err != nil {
			return err
		}
	}
	for i, g := range ds.Grievances {
		if err := check("grievance", i, g.Supplier, len(ds.Suppliers)); err != nil {
			return err
		}
	}
	for i, k := range ds.KPIs {
		if err := check("kpi", i, k.Organization, len(ds.Organizations)); err != nil {
			return err
		}
	}
	for i, s := range ds.Surveys {
		if err := check("survey", i, s.Organization, len(ds.Organizations)); err != nil {
			return err
		}
	}
	for i, r := range ds.Responses {
		if err := check("response survey", i, r.Survey, len(ds.Surveys)); err != nil {
			return err
		}
		if err := check("response question", i, r.Question, len(ds.Surveys[r.Survey].Questions)); err != nil {
			return err
		}
		if err := check("response supplier", i, r.Supplier, len(ds.Suppliers)); err != nil {
			return err
		}
		if r.Reviewer != nil {
			if err := check("response reviewer", i, *r.Reviewer, len(ds.Users)); err != nil {
				return err
			}
		}
	}
	return nil
}

// QuestionCount is the number of questions across all surveys.
func (ds *Dataset) QuestionCount() int {
	n := 0
	for _, s := range ds.Surveys {
		n += len(s.Questions)
	}
	return n
}
