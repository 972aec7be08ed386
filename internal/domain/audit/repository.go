package audit

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Log, error)
}
