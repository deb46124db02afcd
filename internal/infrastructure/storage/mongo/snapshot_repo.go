package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengkel/internal/domain/reports"
)

// SnapshotRepo stores one document per day, keyed by the YYYY-MM-DD date.
// Re-running the snapshot job for a day overwrites its document.
type SnapshotRepo struct {
	coll *mongo.Collection
}

// NewSnapshotRepo creates the revenue snapshot repository.
func NewSnapshotRepo(s *Store) *SnapshotRepo {
	return &SnapshotRepo{coll: s.db.Collection(collSnapshots)}
}

var _ reports.SnapshotRepository = (*SnapshotRepo)(nil)

func (r *SnapshotRepo) Save(ctx context.Context, snap reports.DailySnapshot) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": snap.Date},
		snap,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.Date, err)
	}
	return nil
}
