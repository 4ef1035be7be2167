// Package resume exposes the résumé store over a JSON API.
package resume

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/cv"
	"cv-builder/internal/cvstore"
	"cv-builder/internal/importer"
	"cv-builder/internal/render"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/server/respond"
	"cv-builder/internal/shared/telemetry"
	"cv-builder/internal/shared/util"
)

const maxBodySize = 5 << 20 // 5MB

// Handler wires the store, renderer and importer to HTTP.
type Handler struct {
	Store    *cvstore.Store
	Renderer *render.Renderer
}

// NewHandler constructs a Handler.
func NewHandler(store *cvstore.Store, renderer *render.Renderer) *Handler {
	return &Handler{Store: store, Renderer: renderer}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.get)
	rg.PUT("/resume", h.update)
	rg.DELETE("/resume", h.reset)
	rg.POST("/resume/load", h.load)
	rg.GET("/resume/validate", h.validate)
	rg.GET("/resume/export", h.export)
	rg.POST("/resume/import", h.importFile)
}

// UpdateResponse is the store state plus advisory validation issues.
type UpdateResponse struct {
	cvstore.State
	Issues []cv.Issue `json:"issues"`
}

// ValidateResponse reports advisory validation issues.
type ValidateResponse struct {
	Valid  bool       `json:"valid"`
	Issues []cv.Issue `json:"issues"`
}

// ImportResponse is the imported résumé and how it was read.
type ImportResponse struct {
	Resume   cv.Resume  `json:"resume"`
	MimeType string     `json:"mimeType"`
	Issues   []cv.Issue `json:"issues"`
}

// ensureLoaded triggers the first load. A failure is recorded in the store state.
func (h *Handler) ensureLoaded(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		telemetry.Warn("cv.load_failed", map[string]any{"path": c.FullPath(), "error": err.Error()})
	}
}

func (h *Handler) get(c *gin.Context) {
	h.ensureLoaded(c)
	respond.OK(c, h.Store.State())
}

func (h *Handler) update(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
		return
	}

	var next cv.Resume
	if err := json.Unmarshal(raw, &next); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume JSON", err.Error())
		return
	}

	h.Store.UpdateResumeData(next)
	issues := issuesFor(next)
	telemetry.Info("cv.update", map[string]any{
		"name":   next.Personal.Name,
		"issues": len(issues),
	})
	respond.OK(c, UpdateResponse{State: h.Store.State(), Issues: issues})
}

func (h *Handler) reset(c *gin.Context) {
	h.Store.ResetResumeData()
	respond.OK(c, h.Store.State())
}

func (h *Handler) load(c *gin.Context) {
	// Failures are recorded in the returned state.
	_ = h.Store.LoadResumeData(c.Request.Context())
	respond.OK(c, h.Store.State())
}

func (h *Handler) validate(c *gin.Context) {
	h.ensureLoaded(c)
	r, ok := h.Store.Resume()
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no resume data", nil)
		return
	}
	issues := issuesFor(r)
	respond.OK(c, ValidateResponse{Valid: len(issues) == 0, Issues: issues})
}

func (h *Handler) export(c *gin.Context) {
	h.ensureLoaded(c)
	r, ok := h.Store.Resume()
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no resume data", nil)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "json")))
	prefs := []string{c.Query("lang"), c.GetHeader("Accept-Language")}
	base := util.Slug(r.Personal.Name, "resume")

	var (
		body        []byte
		contentType string
		ext         string
		err         error
	)
	switch format {
	case "json":
		body, err = json.MarshalIndent(r, "", "  ")
		contentType, ext = "application/json; charset=utf-8", ".json"
	case "html":
		body, err = h.Renderer.Standalone(r, prefs...)
		contentType, ext = "text/html; charset=utf-8", ".html"
	case "docx":
		labels, _ := h.Renderer.Labels(prefs...)
		body, err = render.DOCX(r, labels)
		contentType, ext = "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be json, html or docx", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "render_failed", err.Error(), nil)
		return
	}

	metrics.IncExport()
	telemetry.Info("cv.export", map[string]any{"format": format, "size_bytes": len(body)})
	respond.Attachment(c, contentType, base+ext, body)
}

func (h *Handler) importFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, importer.MaxSize+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, importer.MaxSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	res, err := importer.Import(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnsupported):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
		case errors.Is(err, importer.ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "import_failed", err.Error(), nil)
		}
		return
	}

	h.Store.UpdateResumeData(res.Resume)
	metrics.IncImport()
	telemetry.Info("cv.import", map[string]any{
		"file_name": fileName,
		"mime_type": res.MimeType,
		"size":      len(data),
	})
	respond.OK(c, ImportResponse{Resume: res.Resume, MimeType: res.MimeType, Issues: issuesFor(res.Resume)})
}

func issuesFor(r cv.Resume) []cv.Issue {
	issues, err := cv.Validate(r)
	if err != nil {
		telemetry.Warn("cv.validate_failed", map[string]any{"error": err.Error()})
	}
	if issues == nil {
		issues = []cv.Issue{}
	}
	return issues
}
