package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"cv-builder/internal/cv"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/storage/object"
	"cv-builder/internal/shared/telemetry"
)

const maxLabelLength = 120

// ResumeStore is the part of the résumé store snapshots read from and restore into.
type ResumeStore interface {
	Resume() (cv.Resume, bool)
	UpdateResumeData(r cv.Resume)
}

// Service saves and restores résumé snapshots.
type Service struct {
	Objects object.Store
	Repo    Repo
	Resumes ResumeStore
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create stores the current résumé under a new snapshot.
func (s *Service) Create(ctx context.Context, label string) (Snapshot, error) {
	label = strings.TrimSpace(label)
	if len(label) > maxLabelLength {
		return Snapshot{}, fmt.Errorf("%w: label longer than %d characters", ErrInvalidInput, maxLabelLength)
	}
	resume, ok := s.Resumes.Resume()
	if !ok {
		return Snapshot{}, ErrNoResume
	}

	body, err := json.Marshal(resume)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode resume: %w", err)
	}

	id := uuid.NewString()
	key := "snapshots/" + id + ".json"
	size, err := s.Objects.Put(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("store snapshot body: %w", err)
	}

	snap := Snapshot{
		ID:         id,
		Label:      label,
		StorageKey: key,
		SizeBytes:  size,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, snap); err != nil {
		if delErr := s.Objects.Delete(ctx, key); delErr != nil {
			telemetry.Warn("snapshot.cleanup_failed", map[string]any{"snapshot_id": id, "error": delErr.Error()})
		}
		return Snapshot{}, fmt.Errorf("record snapshot: %w", err)
	}

	metrics.IncSnapshot()
	telemetry.Info("snapshot.created", map[string]any{
		"snapshot_id": id,
		"size_bytes":  size,
	})
	return snap, nil
}

// List returns snapshot metadata newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Snapshot, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Get returns the snapshot and its résumé body.
func (s *Service) Get(ctx context.Context, id string) (Snapshot, cv.Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Snapshot{}, cv.Resume{}, ErrNotFound
	}
	snap, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Snapshot{}, cv.Resume{}, err
	}

	rc, err := s.Objects.Open(ctx, snap.StorageKey)
	if err != nil {
		return Snapshot{}, cv.Resume{}, fmt.Errorf("open snapshot body: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return Snapshot{}, cv.Resume{}, fmt.Errorf("read snapshot body: %w", err)
	}
	var resume cv.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return Snapshot{}, cv.Resume{}, fmt.Errorf("decode snapshot body: %w", err)
	}
	return snap, resume, nil
}

// Restore replaces the current résumé with the snapshot body.
func (s *Service) Restore(ctx context.Context, id string) (Snapshot, cv.Resume, error) {
	snap, resume, err := s.Get(ctx, id)
	if err != nil {
		return Snapshot{}, cv.Resume{}, err
	}
	s.Resumes.UpdateResumeData(resume)
	telemetry.Info("snapshot.restored", map[string]any{"snapshot_id": id})
	return snap, resume, nil
}

// Delete removes the snapshot metadata and its body.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	snap, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Objects.Delete(ctx, snap.StorageKey); err != nil {
		telemetry.Warn("snapshot.body_delete_failed", map[string]any{"snapshot_id": id, "error": err.Error()})
	}
	return nil
}
