package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/event"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// UpsertRateConfigUseCase replaces a partner's tenure rate table.
type UpsertRateConfigUseCase struct {
	rateRepo  port.RateConfigRepository
	publisher port.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewUpsertRateConfigUseCase wires dependencies.
func NewUpsertRateConfigUseCase(
	rateRepo port.RateConfigRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UpsertRateConfigUseCase {
	return &UpsertRateConfigUseCase{
		rateRepo:  rateRepo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute validates and stores the table.
func (uc *UpsertRateConfigUseCase) Execute(
	ctx context.Context,
	req dto.UpsertRateConfigRequest,
) (dto.RateConfigResponse, error) {
	channelingType, err := valueobject.NewChannelingType(req.ChannelingType)
	if err != nil {
		return dto.RateConfigResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	for tenure, rate := range req.Rates {
		if n, err := strconv.Atoi(tenure); err != nil || n <= 0 {
			return dto.RateConfigResponse{}, fmt.Errorf("%w: tenure %q is not a positive month count", ErrInvalidRequest, tenure)
		}
		if rate.IsNegative() {
			return dto.RateConfigResponse{}, fmt.Errorf("%w: negative rate for tenure %s", ErrInvalidRequest, tenure)
		}
	}

	cfg := valueobject.NewRateConfig(req.Rates, req.Active)
	if err := uc.rateRepo.Save(ctx, channelingType, cfg); err != nil {
		return dto.RateConfigResponse{}, fmt.Errorf("save rate config: %w", err)
	}

	evt := event.NewChannelingRateConfigUpdated(channelingType.String(), cfg.Rates(), cfg.Active(), uc.now())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.RateConfigResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "channeling rate config updated",
		"channeling_type", channelingType.String(),
		"tenures", len(req.Rates),
		"active", req.Active,
	)

	return dto.RateConfigResponse{
		ChannelingType: channelingType.String(),
		Rates:          cfg.Rates(),
		Active:         cfg.Active(),
	}, nil
}
