package snapshots

import "context"

// Repo persists snapshot metadata.
type Repo interface {
	Create(ctx context.Context, s Snapshot) error
	GetByID(ctx context.Context, id string) (Snapshot, error)
	List(ctx context.Context, limit, offset int) ([]Snapshot, error)
	Delete(ctx context.Context, id string) error
}
