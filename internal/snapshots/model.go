package snapshots

import "time"

// Snapshot is the metadata of a saved résumé body. The body lives in the object store.
type Snapshot struct {
	ID         string
	Label      string
	StorageKey string
	SizeBytes  int64
	CreatedAt  time.Time
}
