package application

import "context"

type ListFilter struct {
	Status *Status
	Page   int
	Limit  int
}

type StatusCounts struct {
	Pending  int64
	Approved int64
	Rejected int64
}

func (c StatusCounts) Total() int64 { return c.Pending + c.Approved + c.Rejected }

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	GetByRef(ctx context.Context, ref string) (*Application, error)
	// GetByRefForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent transitions serialize.
	GetByRefForUpdate(ctx context.Context, ref string) (*Application, error)
	// List returns one page, newest first, with owning user and documents
	// preloaded, plus the unpaginated total.
	List(ctx context.Context, f ListFilter) ([]Application, int64, error)
	ListByUser(ctx context.Context, userID uint64) ([]Application, error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
	SumApprovedAmount(ctx context.Context) (float64, error)
}
