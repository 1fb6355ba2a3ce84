package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spacelayout/pkg/backend"
	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/observability"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

const classroomJSON = `{
	"room": {"lengthMeters": 10, "widthMeters": 8},
	"spaceTypeId": "aula",
	"items": [{"itemTypeId": "pupitre", "quantityRequested": 20}],
	"options": {"includeInstructorZone": true}
}`

func newTestServer(t *testing.T) (*httptest.Server, *pipeline.Runner) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, nil, logger)
	ts := httptest.NewServer(NewServer(runner, logger).Handler())
	t.Cleanup(ts.Close)
	return ts, runner
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Backend {
		t.Errorf("body = %+v", body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id")
	}
}

func TestHealthStats(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	counters := observability.NewCounters()
	observability.Register(counters.Hooks())
	ts := httptest.NewServer(NewServer(pipeline.NewRunner(fc, nil, logger), logger).WithCounters(counters).Handler())
	t.Cleanup(ts.Close)

	post(t, ts.URL+"/api/v1/layout", classroomJSON).Body.Close()

	resp := get(t, ts.URL+"/health")
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Stats == nil {
		t.Fatal("stats missing from health response")
	}
	if body.Stats.Layouts != 1 || body.Stats.PlacedItems != 20 || body.Stats.CacheMisses != 1 {
		t.Errorf("stats = %+v", *body.Stats)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want client value", got)
	}
}

func TestLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/layout", classroomJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.IsViable || len(res.Placed) != 20 || res.Source != layout.SourceLocal {
		t.Errorf("result viable=%v placed=%d source=%s", res.IsViable, len(res.Placed), res.Source)
	}

	again := post(t, ts.URL+"/api/v1/layout", classroomJSON)
	if got := again.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	refreshed := post(t, ts.URL+"/api/v1/layout?refresh=true", classroomJSON)
	if got := refreshed.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("refresh X-Cache = %q, want MISS", got)
	}
}

func TestLayoutErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", `{"room":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"roomz": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"zero width", `{"room": {"lengthMeters": 10, "widthMeters": 0}, "spaceTypeId": "aula"}`,
			http.StatusUnprocessableEntity, errors.ErrCodeInvalidRoomSpec},
		{"unknown item", `{"room": {"lengthMeters": 10, "widthMeters": 8}, "spaceTypeId": "aula",
			"items": [{"itemTypeId": "trampolin", "quantityRequested": 1}]}`,
			http.StatusUnprocessableEntity, errors.ErrCodeUnknownItemType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/layout", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			detail := decodeError(t, resp)
			if detail.Code != tt.code {
				t.Errorf("code = %s, want %s", detail.Code, tt.code)
			}
			if detail.Message == "" || detail.RequestID == "" {
				t.Errorf("detail = %+v", detail)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)

	body := `{"request": ` + classroomJSON + `, "format": "svg", "options": {"zoom": 0.5}}`
	resp := post(t, ts.URL+"/api/v1/render", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Layout-Viable") != "true" || resp.Header.Get("X-Layout-Placed") != "20" {
		t.Errorf("layout headers = %v", resp.Header)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("<svg ")) {
		t.Error("body is not svg")
	}
	if bytes.Contains(data, []byte(`class="item-label"`)) {
		t.Error("labels should be hidden below the zoom threshold")
	}

	png := post(t, ts.URL+"/api/v1/render", `{"request": `+classroomJSON+`, "format": "png"}`)
	if png.StatusCode != http.StatusOK || png.Header.Get("Content-Type") != "image/png" {
		t.Errorf("png status=%d type=%q", png.StatusCode, png.Header.Get("Content-Type"))
	}
}

func TestRenderErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad format", `{"request": ` + classroomJSON + `, "format": "gif"}`},
		{"bad zoom", `{"request": ` + classroomJSON + `, "options": {"zoom": 99}}`},
		{"two formats", `{"request": ` + classroomJSON + `, "options": {"formats": ["svg", "png"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/render", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if d := decodeError(t, resp); d.Code != errors.ErrCodeInvalidInput {
				t.Errorf("code = %s", d.Code)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/api/v1/catalog")
	var all struct {
		Spaces []struct {
			Type  string `json:"type"`
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"spaces"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		t.Fatal(err)
	}
	if len(all.Spaces) != 6 {
		t.Errorf("spaces = %d, want 6", len(all.Spaces))
	}

	one := get(t, ts.URL+"/api/v1/catalog/laboratorio")
	var space struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(one.Body).Decode(&space); err != nil {
		t.Fatal(err)
	}
	if space.Type != "computer_lab" {
		t.Errorf("type = %q, want computer_lab", space.Type)
	}

	missing := get(t, ts.URL+"/api/v1/catalog/piscina")
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missing.StatusCode)
	}
}

type failingBackend struct{}

func (failingBackend) Analyze(context.Context, layout.Request) (*backend.Analysis, error) {
	return nil, errors.New(errors.ErrCodeNetwork, "connection refused")
}

func TestAnalyze(t *testing.T) {
	ts, runner := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/analyze", `{"request": `+classroomJSON+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out pipeline.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Offline || out.Remote != nil {
		t.Error("without backend the analysis should be offline")
	}

	runner.Backend = failingBackend{}
	degraded := post(t, ts.URL+"/api/v1/analyze", `{"request": `+classroomJSON+`, "preferRemote": true}`)
	if degraded.StatusCode != http.StatusOK {
		t.Fatalf("backend failure should not fail the request: %d", degraded.StatusCode)
	}
	var d pipeline.Analysis
	if err := json.NewDecoder(degraded.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if !d.Offline || len(d.Display.Warnings) == 0 {
		t.Errorf("offline=%v warnings=%v", d.Offline, d.Display.Warnings)
	}
}

func TestRouting(t *testing.T) {
	ts, _ := newTestServer(t)

	if resp := get(t, ts.URL+"/api/v2/nothing"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
	if resp := get(t, ts.URL+"/api/v1/layout"); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET layout status = %d", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeInvalidInput:    http.StatusBadRequest,
		errors.ErrCodeInvalidFormat:   http.StatusBadRequest,
		errors.ErrCodeInvalidRoomSpec: http.StatusUnprocessableEntity,
		errors.ErrCodeUnknownItemType: http.StatusUnprocessableEntity,
		errors.ErrCodeNotFound:        http.StatusNotFound,
		errors.ErrCodeNetwork:         http.StatusBadGateway,
		errors.ErrCodeUnauthorized:    http.StatusBadGateway,
		errors.ErrCodeRateLimited:     http.StatusTooManyRequests,
		errors.ErrCodeInternal:        http.StatusInternalServerError,
		"":                            http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%q) = %d, want %d", code, got, want)
		}
	}
}
