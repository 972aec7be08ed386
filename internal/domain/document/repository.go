package document

import "context"

type Repository interface {
	// Upsert inserts the row or, when one already exists for the same
	// (application, type), overwrites its metadata in place.
	Upsert(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uint64) (*Document, error)
	ListByApplication(ctx context.Context, applicationID uint64) ([]Document, error)
}
