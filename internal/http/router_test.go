package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "along/internal/config"
	"along/internal/domain"
	h "along/internal/http/handlers"
	"along/internal/provider"
	"along/internal/repositories"
	"along/internal/services"
	"along/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubProvider struct {
	text string
	err  error
}

func (p stubProvider) FetchRoute(context.Context, provider.RouteQuery) (string, error) {
	return p.text, p.err
}

func newTestRouter(p provider.RouteTextProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hs := &h.Handlers{
		Routes: services.RouteService{
			Provider:      p,
			History:       services.NewHistoryBook(repositories.NewMemoryKV(), 16),
			DefaultRegion: domain.RegionLagos,
		},
		DefaultRegion: domain.RegionLagos,
	}
	return NewRouter(intconfig.Env{}, hs)
}

func do(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

const route = "1. Walk to the CMS bus stop.\n2. Board a BRT bus to Ikeja.\n3. Take a keke to the mall."

func TestGetRouteAndHistory(t *testing.T) {
	r := newTestRouter(stubProvider{text: route})

	body := `{"origin":"CMS Bus Stop","destination":"Ikeja City Mall","state":"lagos"}`
	w := do(r, http.MethodPost, "/api/get-route", body, "X-Along-Session", "s1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	if out["found"] != true || out["region"] != "Lagos" {
		t.Fatalf("unexpected response %v", out)
	}
	stepsOut, _ := out["steps"].([]any)
	if len(stepsOut) != 3 {
		t.Fatalf("expected 3 steps, got %v", out["steps"])
	}
	if first := stepsOut[0].(map[string]any); first["mode"] != "Bus" || first["index"] != float64(1) {
		t.Fatalf("unexpected first step %v", first)
	}

	_ = do(r, http.MethodPost, "/api/get-route", body, "X-Along-Session", "s1")

	w = do(r, http.MethodGet, "/api/history", "", "X-Along-Session", "s1")
	hist := decode(t, w)
	entries, _ := hist["history"].([]any)
	if len(entries) != 1 || entries[0].(map[string]any)["count"] != float64(2) {
		t.Fatalf("unexpected history %v", hist)
	}

	w = do(r, http.MethodGet, "/api/history", "")
	if entries := decode(t, w)["history"].([]any); len(entries) != 0 {
		t.Fatalf("default session should be empty, got %v", entries)
	}
}

func TestGetRouteNoSteps(t *testing.T) {
	r := newTestRouter(stubProvider{text: "I could not find that place."})
	w := do(r, http.MethodPost, "/api/get-route", `{"origin":"A","destination":"B"}`)
	out := decode(t, w)
	if w.Code != http.StatusOK || out["found"] != false || out["message"] != "No valid route found." {
		t.Fatalf("unexpected response %d %v", w.Code, out)
	}
}

func TestGetRouteErrors(t *testing.T) {
	tests := []struct {
		name   string
		p      provider.RouteTextProvider
		body   string
		status int
		code   string
	}{
		{"missing fields", stubProvider{text: route}, `{"origin":"A"}`, http.StatusBadRequest, "validation_error"},
		{"bad region", stubProvider{text: route}, `{"origin":"A","destination":"B","state":"Kano"}`, http.StatusBadRequest, "validation_error"},
		{"auth", provider.Unconfigured{}, `{"origin":"A","destination":"B"}`, http.StatusInternalServerError, "provider_auth_error"},
		{"unavailable", stubProvider{err: domain.ProviderError{Kind: domain.ProviderUnavailable}}, `{"origin":"A","destination":"B"}`, http.StatusBadGateway, "provider_unavailable"},
		{"invalid input", stubProvider{err: domain.ProviderError{Kind: domain.ProviderInvalidInput}}, `{"origin":"A","destination":"B"}`, http.StatusBadRequest, "invalid_input"},
		{"other", stubProvider{err: context.Canceled}, `{"origin":"A","destination":"B"}`, http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newTestRouter(tc.p), http.MethodPost, "/api/get-route", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if got := decode(t, w)["code"]; got != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, got)
			}
		})
	}
}

func TestGetRouteAuthMessage(t *testing.T) {
	w := do(newTestRouter(provider.Unconfigured{}), http.MethodPost, "/api/get-route", `{"origin":"A","destination":"B"}`)
	msg, _ := decode(t, w)["error"].(string)
	if !strings.HasPrefix(msg, "The server's API Key is invalid or missing") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGetRouteBadBody(t *testing.T) {
	r := newTestRouter(stubProvider{text: route})
	if w := do(r, http.MethodPost, "/api/get-route", `{"origin":`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/get-route", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", w.Code)
	}
}

func TestGetRouteMethodNotAllowed(t *testing.T) {
	w := do(newTestRouter(stubProvider{text: route}), http.MethodGet, "/api/get-route", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Method not allowed" {
		t.Fatalf("unexpected error %v", got)
	}
}

func TestRouteCardPDF(t *testing.T) {
	r := newTestRouter(stubProvider{text: route})
	body := `{"origin":"Wuse Market","destination":"Jabi Lake Mall","state":"Abuja","route":"1. Walk to the park."}`
	w := do(r, http.MethodPost, "/api/route-card", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "along-wuse-market-to-jabi-lake-mall.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf body")
	}
}

func TestRegionsHealthAndRoutes(t *testing.T) {
	r := newTestRouter(stubProvider{text: route})

	out := decode(t, do(r, http.MethodGet, "/api/regions", ""))
	if out["default"] != "Lagos" || len(out["regions"].([]any)) != len(domain.SupportedRegions) {
		t.Fatalf("unexpected regions %v", out)
	}

	if w := do(r, http.MethodGet, "/api/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}

	routes := decode(t, do(r, http.MethodGet, "/api/routes", ""))["routes"].([]any)
	found := false
	for _, rt := range routes {
		if rt.(map[string]any)["path"] == "/api/get-route" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected /api/get-route in %v", routes)
	}
}

func TestNotFound(t *testing.T) {
	if w := do(newTestRouter(stubProvider{}), http.MethodGet, "/api/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRouteLogsCarryRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := utils.Log
	utils.Log = zap.New(core)
	defer func() { utils.Log = prev }()

	r := newTestRouter(stubProvider{text: route})
	_ = do(r, http.MethodPost, "/api/get-route", `{"origin":"A","destination":"B"}`, "X-Request-ID", "req-7")
	_ = do(r, http.MethodGet, "/api/history", "", "X-Request-ID", "req-8")

	for _, tc := range []struct{ action, id string }{{"search", "req-7"}, {"history", "req-8"}} {
		got := logs.FilterField(zap.String("module", "ROUTE")).FilterField(zap.String("action", tc.action))
		if got.Len() != 1 {
			t.Fatalf("expected one %s log, got %d", tc.action, got.Len())
		}
		if id := got.All()[0].ContextMap()["request_id"]; id != tc.id {
			t.Fatalf("%s log request_id = %v, want %s", tc.action, id, tc.id)
		}
	}
}
