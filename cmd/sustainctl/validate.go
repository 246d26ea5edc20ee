// cmd/sustainctl/validate.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type identified struct {
	ID string `json:"id"`
}

// platformValidator walks the API the way an operator would after a deploy
// and tallies each check.
type platformValidator struct {
	client  *http.Client
	baseURL string
	out     io.Writer
	token   string

	passed  int
	failed  int
	skipped int
}

func newPlatformValidator(baseURL string, out io.Writer) *platformValidator {
	return &platformValidator{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		out:     out,
	}
}

func (v *platformValidator) Run(ctx context.Context, username, password string, reseed bool) error {
	fmt.Fprintln(v.out, "SustainChain Navigator platform validation")

	v.section("API")
	if _, err := v.call(ctx, http.MethodGet, "/health", nil, http.StatusOK); err != nil {
		v.fail("API server is reachable", err)
		return fmt.Errorf("API at %s is not reachable: %w", v.baseURL, err)
	}
	v.pass("API server is reachable")

	if reseed {
		v.reseed(ctx)
	}

	v.section("Authentication")
	v.signIn(ctx, username, password)
	if v.token == "" {
		v.skip("module checks need a signed-in admin")
	} else {
		v.checkModules(ctx)
		v.checkIntegration(ctx)
		v.checkAdminAccess(ctx)
	}

	v.section("Summary")
	fmt.Fprintf(v.out, "Total: %d  Passed: %d  Failed: %d  Skipped: %d\n",
		v.passed+v.failed+v.skipped, v.passed, v.failed, v.skipped)
	if v.failed > 0 {
		return fmt.Errorf("%d checks failed", v.failed)
	}
	return nil
}

func (v *platformValidator) reseed(ctx context.Context) {
	v.section("Database")
	if _, err := v.call(ctx, http.MethodPost, "/api/seed/reset", nil, http.StatusOK); err != nil {
		v.fail("database reset", err)
		return
	}
	v.pass("database reset")

	data, err := v.call(ctx, http.MethodPost, "/api/seed/seed", nil, http.StatusCreated)
	if err != nil {
		v.fail("database seeded", err)
		return
	}
	var seeded struct {
		Summary map[string]int `json:"summary"`
	}
	if err := json.Unmarshal(data, &seeded); err != nil || len(seeded.Summary) == 0 {
		v.skip("database seeded but no summary returned")
		return
	}
	v.pass(fmt.Sprintf("database seeded (%d organizations, %d users, %d suppliers)",
		seeded.Summary["organizations"], seeded.Summary["users"], seeded.Summary["suppliers"]))
}

func (v *platformValidator) signIn(ctx context.Context, username, password string) {
	data, err := v.call(ctx, http.MethodPost, "/api/auth/signin",
		map[string]string{"username": username, "password": password}, http.StatusOK)
	if err != nil {
		v.fail("sign in as "+username, err)
		return
	}

	var signin struct {
		Username    string `json:"username"`
		Role        string `json:"role"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &signin); err != nil || signin.AccessToken == "" {
		v.fail("sign in as "+username, fmt.Errorf("no access token returned"))
		return
	}
	v.token = signin.AccessToken
	v.pass(fmt.Sprintf("signed in as %s (%s)", signin.Username, signin.Role))
}

func (v *platformValidator) checkModules(ctx context.Context) {
	v.section("Modules")
	modules := []struct{ name, path string }{
		{"Organizations", "/api/organizations"},
		{"Suppliers", "/api/suppliers"},
		{"Products", "/api/products"},
		{"Supply chain", "/api/supply-chain/nodes"},
		{"Grievances", "/api/grievances"},
		{"Satellite monitoring", "/api/satellite"},
		{"KPI dashboard", "/api/kpis"},
		{"Supplier engagement", "/api/surveys"},
	}
	for _, m := range modules {
		items, err := v.list(ctx, m.path)
		switch {
		case err != nil:
			v.fail(m.name+" module", err)
		case len(items) == 0:
			v.fail(m.name+" module", fmt.Errorf("no data returned"))
		default:
			v.pass(m.name + " module")
		}
	}

	if _, err := v.call(ctx, http.MethodGet, "/api/admin/dashboard", nil, http.StatusOK); err != nil {
		v.fail("Admin console module", err)
	} else {
		v.pass("Admin console module")
	}
}

func (v *platformValidator) checkIntegration(ctx context.Context) {
	v.section("Cross-module integration")

	v.firstThen(ctx, "supplier grievances", "/api/suppliers", func(id string) error {
		_, err := v.list(ctx, "/api/grievances/supplier/"+id)
		return err
	})

	v.firstThen(ctx, "product supply chain", "/api/products", func(id string) error {
		_, err := v.call(ctx, http.MethodGet, "/api/supply-chain/nodes/product/"+id, nil, http.StatusOK)
		return err
	})

	v.firstThen(ctx, "KPI calculation", "/api/organizations", func(id string) error {
		data, err := v.call(ctx, http.MethodGet, "/api/kpis/calculate/dcf/"+id, nil, http.StatusOK)
		if err != nil {
			return err
		}
		var kpi struct {
			Value *float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &kpi); err != nil || kpi.Value == nil {
			return fmt.Errorf("no value returned")
		}
		return nil
	})

	if _, err := v.call(ctx, http.MethodGet, "/api/grievances/heatmap/data", nil, http.StatusOK); err != nil {
		v.fail("grievance heatmap", err)
	} else {
		v.pass("grievance heatmap")
	}
}

func (v *platformValidator) checkAdminAccess(ctx context.Context) {
	v.section("Roles and permissions")
	if _, err := v.list(ctx, "/api/users"); err != nil {
		v.fail("admin can manage users", err)
	} else {
		v.pass("admin can manage users")
	}
	if _, err := v.call(ctx, http.MethodGet, "/api/admin/settings", nil, http.StatusOK); err != nil {
		v.fail("admin can read system settings", err)
	} else {
		v.pass("admin can read system settings")
	}
}

// firstThen runs check against the first item of a listing, skipping when
// the listing is empty.
func (v *platformValidator) firstThen(ctx context.Context, name, path string, check func(id string) error) {
	items, err := v.list(ctx, path)
	if err != nil {
		v.fail(name, err)
		return
	}
	if len(items) == 0 {
		v.skip(name + ": nothing to check against")
		return
	}
	if err := check(items[0].ID); err != nil {
		v.fail(name, err)
		return
	}
	v.pass(name)
}

func (v *platformValidator) list(ctx context.Context, path string) ([]identified, error) {
	data, err := v.call(ctx, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var items []identified
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("expected a list: %w", err)
	}
	return items, nil
}

// call sends a request and returns the envelope's data when the status matches.
func (v *platformValidator) call(ctx context.Context, method, path string, body interface{}, want int) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if v.token != "" {
		req.Header.Set("x-access-token", v.token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: invalid response: %w", method, path, err)
	}
	if resp.StatusCode != want {
		if env.Error != nil {
			return nil, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, env.Error.Message)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return env.Data, nil
}

func (v *platformValidator) section(title string) {
	fmt.Fprintf(v.out, "\n> %s\n", title)
}

func (v *platformValidator) pass(msg string) {
	v.passed++
	fmt.Fprintf(v.out, "  ok    %s\n", msg)
}

func (v *platformValidator) fail(msg string, err error) {
	v.failed++
	fmt.Fprintf(v.out, "  FAIL  %s: %v\n", msg, err)
}

func (v *platformValidator) skip(msg string) {
	v.skipped++
	fmt.Fprintf(v.out, "  skip  %s\n", msg)
}
