package views

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/cvstore"
	"cv-builder/internal/render"
	"cv-builder/internal/shared/server/respond"
	"cv-builder/internal/shared/telemetry"
)

// Handler renders the views bound in Routes.
type Handler struct {
	Store    *cvstore.Store
	Renderer *render.Renderer
}

// NewHandler constructs a Handler.
func NewHandler(store *cvstore.Store, renderer *render.Renderer) *Handler {
	return &Handler{Store: store, Renderer: renderer}
}

// RegisterRoutes attaches every entry of Routes to the engine.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	for _, route := range Routes {
		r.GET(route.Path, h.serve(route))
	}
}

func (h *Handler) serve(route Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("view", route.View)
		if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
			// The failure is part of the store state and shown on the page.
			telemetry.Warn("view.load_failed", map[string]any{"view": route.View, "error": err.Error()})
		}

		labels, lang := h.Renderer.Labels(c.Query("lang"), c.GetHeader("Accept-Language"))
		page := render.Page{Lang: lang, L: labels}
		st := h.Store.State()

		var buf bytes.Buffer
		var err error
		switch route.View {
		case ViewEditor:
			err = h.Renderer.Editor(&buf, editorPage(page, st))
		default:
			err = h.Renderer.Resume(&buf, resumePage(page, st))
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render view", nil)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

func resumePage(page render.Page, st cvstore.State) render.ResumePage {
	p := render.ResumePage{Page: page, Resume: st.ResumeData, Loading: st.IsLoading}
	if st.Error != nil {
		p.Error = *st.Error
	}
	return p
}

func editorPage(page render.Page, st cvstore.State) render.EditorPage {
	p := render.EditorPage{Page: page, HasResume: st.ResumeData != nil}
	if st.ResumeData != nil {
		if raw, err := json.MarshalIndent(st.ResumeData, "", "  "); err == nil {
			p.ResumeJSON = string(raw)
		}
	}
	if st.Error != nil {
		p.Error = *st.Error
	}
	return p
}
