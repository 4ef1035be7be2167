package snapshots

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/shared/server/respond"
)

// Handler exposes snapshots over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches snapshot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/snapshots", h.create)
	rg.GET("/snapshots", h.list)
	rg.GET("/snapshots/:id", h.get)
	rg.POST("/snapshots/:id/restore", h.restore)
	rg.DELETE("/snapshots/:id", h.delete)
}

type createRequest struct {
	Label string `json:"label"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.Create(c.Request.Context(), req.Label)
	if err != nil {
		h.fail(c, err, "failed to create snapshot")
		return
	}
	c.Set("snapshotId", snap.ID)
	respond.JSON(c, http.StatusCreated, toResponse(snap))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	snaps, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err, "failed to list snapshots")
		return
	}
	resp := make([]SnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		resp = append(resp, toResponse(s))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("snapshotId", id)
	snap, resume, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to load snapshot")
		return
	}
	respond.OK(c, SnapshotDetailResponse{SnapshotResponse: toResponse(snap), Resume: resume})
}

func (h *Handler) restore(c *gin.Context) {
	id := c.Param("id")
	c.Set("snapshotId", id)
	snap, resume, err := h.Svc.Restore(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to restore snapshot")
		return
	}
	respond.OK(c, SnapshotDetailResponse{SnapshotResponse: toResponse(snap), Resume: resume})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("snapshotId", id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "failed to delete snapshot")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "snapshot not found", nil)
	case errors.Is(err, ErrNoResume):
		respond.Error(c, http.StatusConflict, "no_resume", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
