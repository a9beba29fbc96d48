package toolsync

import "context"

type Repository interface {
	// ListByUserAndTool returns records for (user, tool) oldest first.
	ListByUserAndTool(ctx context.Context, userID, toolType string) ([]*Record, error)
	// Insert stores a record and assigns its server ID.
	Insert(ctx context.Context, record *Record) error
	// DeleteByIDs removes the given rows.
	DeleteByIDs(ctx context.Context, ids []uint) error
	// DeleteBeyond prunes all but the keep newest rows for (user, tool).
	// keep <= 0 means unlimited retention, nothing is deleted.
	DeleteBeyond(ctx context.Context, userID, toolType string, keep int) error
}
