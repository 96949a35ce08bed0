package port

import (
	"context"
	"errors"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/event"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ScheduleRepository is the bulk sink for generated channeling schedules.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go
type ScheduleRepository interface {
	// ReplaceForLoan atomically swaps the stored schedule of a loan.
	ReplaceForLoan(ctx context.Context, loanID string, entries []model.ScheduleEntry) error
	FindByLoanID(ctx context.Context, loanID string) ([]model.ScheduleEntry, error)
}

// RateConfigRepository stores partner tenure rate tables.
type RateConfigRepository interface {
	// FindActive returns ErrNotFound when the partner has no enabled table.
	FindActive(ctx context.Context, channelingType valueobject.ChannelingType) (valueobject.RateConfig, error)
	Save(ctx context.Context, channelingType valueobject.ChannelingType, cfg valueobject.RateConfig) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
