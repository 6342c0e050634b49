package docs

import (
	"encoding/json"
	"testing"
)

func TestSwaggerSpecCoversRoutes(t *testing.T) {
	rendered := SwaggerInfo.ReadDoc()

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]map[string]any  `json:"paths"`
		Defs    map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(rendered), &spec); err != nil {
		t.Fatalf("rendered spec is not valid JSON: %v", err)
	}
	if spec.Swagger != "2.0" {
		t.Fatalf("swagger version %q", spec.Swagger)
	}

	want := []string{
		"/healthz",
		"/readyz",
		"/api/v1/funds/performance",
		"/api/v1/funds/{code}/performance",
		"/api/v1/analytics/overview",
		"/api/v1/performance/daily",
		"/api/v1/performance/periods",
		"/api/v1/accounts",
		"/api/v1/accounts/{id}",
		"/api/v1/sync/daily",
		"/api/v1/sync/runs",
	}
	for _, path := range want {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
	if _, ok := spec.Defs["handler.apiResponse"]; !ok {
		t.Errorf("spec missing handler.apiResponse definition")
	}
}
