package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesEnvelopeAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not_found", "no resume data", gin.H{"hint": "load first"})
	}, func(c *gin.Context) {
		reached = true
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if reached {
		t.Fatalf("expected chain to abort")
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "not_found" || body.Error.Message != "no resume data" || body.Error.Details == nil {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { OK(c, gin.H{"ok": true}) })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != `{"ok":true}` {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}
}

func TestAttachmentSetsDisposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dl", func(c *gin.Context) {
		Attachment(c, "text/html; charset=utf-8", "jordan lee.html", []byte("<p>hi</p>"))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/dl", nil))

	if resp.Code != http.StatusOK || resp.Body.String() != "<p>hi</p>" {
		t.Fatalf("unexpected response %d %q", resp.Code, resp.Body.String())
	}
	cd := resp.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, `filename="jordan lee.html"`) {
		t.Fatalf("unexpected disposition %q", cd)
	}
}
