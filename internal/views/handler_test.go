package views

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/cv"
	"cv-builder/internal/cvstore"
	"cv-builder/internal/render"
)

func newTestRouter(t *testing.T, fetch cvstore.FetcherFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	icons := render.NewIconLibrary()
	if err := icons.Add(render.DefaultIcons...); err != nil {
		t.Fatalf("icons: %v", err)
	}
	tr, err := render.NewTranslator("en")
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	renderer, err := render.NewRenderer(icons, tr)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	r := gin.New()
	NewHandler(cvstore.New(fetch), renderer).RegisterRoutes(r)
	return r
}

func get(router *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestResolve(t *testing.T) {
	cases := []struct {
		path string
		view string
		ok   bool
	}{
		{"/", ViewResume, true},
		{"/edit", ViewEditor, true},
		{"/edit/", ViewEditor, true},
		{"/other", "", false},
		{"/edit/more", "", false},
	}
	for _, tc := range cases {
		r, ok := Resolve(tc.path)
		if ok != tc.ok || r.View != tc.view {
			t.Fatalf("Resolve(%q) = %+v, %v; want %s, %v", tc.path, r, ok, tc.view, tc.ok)
		}
	}
}

func TestRootRendersResumeView(t *testing.T) {
	router := newTestRouter(t, func(ctx context.Context) (cv.Resume, error) {
		return cv.Sample(), nil
	})

	resp := get(router, "/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `data-view="resume"`) || !strings.Contains(body, "Jordan Lee") {
		t.Fatalf("expected resume view, got %s", body)
	}
}

func TestEditRendersEditorView(t *testing.T) {
	router := newTestRouter(t, func(ctx context.Context) (cv.Resume, error) {
		return cv.Sample(), nil
	})

	resp := get(router, "/edit", map[string]string{"Accept-Language": "de-DE,de;q=0.9"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `data-view="editor"`) || !strings.Contains(body, `lang="de"`) {
		t.Fatalf("expected German editor view, got %s", body)
	}
	if !strings.Contains(body, "jordan.lee@example.com") {
		t.Fatalf("expected resume JSON in editor")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	router := newTestRouter(t, func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, cvstore.ErrNoData
	})
	if resp := get(router, "/nowhere", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestResumeViewShowsEmptyAndErrorStates(t *testing.T) {
	router := newTestRouter(t, func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, cvstore.ErrNoData
	})
	body := get(router, "/?lang=en", nil).Body.String()
	if !strings.Contains(body, "No resume data yet") {
		t.Fatalf("expected empty placeholder, got %s", body)
	}

	failing := newTestRouter(t, func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, errors.New("connection refused")
	})
	body = get(failing, "/", nil).Body.String()
	if !strings.Contains(body, "connection refused") {
		t.Fatalf("expected error banner, got %s", body)
	}
}
