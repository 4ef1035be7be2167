package snapshots

import (
	"time"

	"cv-builder/internal/cv"
)

// SnapshotResponse is the JSON shape of snapshot metadata.
type SnapshotResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// SnapshotDetailResponse adds the stored résumé.
type SnapshotDetailResponse struct {
	SnapshotResponse
	Resume cv.Resume `json:"resume"`
}

func toResponse(s Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:        s.ID,
		Label:     s.Label,
		SizeBytes: s.SizeBytes,
		CreatedAt: s.CreatedAt,
	}
}
