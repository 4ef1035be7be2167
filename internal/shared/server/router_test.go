package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/shared/config"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newTestRouter(t *testing.T, dataFile string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"http://localhost:5173"},
			DataFile:        dataFile,
		},
		API: []RouteRegistrar{pingHandler{}},
	})
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestRouterMountsInfrastructureRoutes(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "cv-data.json")
	if err := os.WriteFile(dataFile, []byte(`{"personal":{"name":"x"}}`), 0o644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	r := newTestRouter(t, dataFile)

	cases := []struct {
		path    string
		status  int
		contain string
	}{
		{"/api/v1/health", http.StatusOK, `"ok":true`},
		{"/api/v1/ping", http.StatusOK, "pong"},
		{"/metrics", http.StatusOK, "cv_load_total"},
		{"/static/print.css", http.StatusOK, "@page"},
		{"/cv-data.json", http.StatusOK, `"name":"x"`},
		{"/nope", http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		resp := serve(r, tc.path)
		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), tc.contain) {
			t.Fatalf("%s: expected body to contain %q, got %q", tc.path, tc.contain, resp.Body.String())
		}
	}
}

func TestRouterMissingDataFileIs404(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "missing.json"))
	if resp := serve(r, "/cv-data.json"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing data file, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
