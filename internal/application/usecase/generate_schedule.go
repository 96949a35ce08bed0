package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/event"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

var (
	// ErrInvalidRequest wraps request payloads that cannot be mapped onto the domain.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEventNotPublished means the schedule was stored but its event was
	// not delivered. Repeating the request is safe: the stored rows are
	// replaced and the event is published again.
	ErrEventNotPublished = errors.New("schedule stored but event not published")
)

var tracer = otel.Tracer("github.com/bibbank/bib/services/channeling-service/internal/application/usecase")

// GenerateScheduleUseCase computes the channeling schedule of a loan, stores
// it and announces it to downstream consumers.
type GenerateScheduleUseCase struct {
	scheduleRepo port.ScheduleRepository
	rateRepo     port.RateConfigRepository
	publisher    port.EventPublisher
	logger       *slog.Logger
	location     *time.Location
	now          func() time.Time
}

// NewGenerateScheduleUseCase wires dependencies.
func NewGenerateScheduleUseCase(
	scheduleRepo port.ScheduleRepository,
	rateRepo port.RateConfigRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{
		scheduleRepo: scheduleRepo,
		rateRepo:     rateRepo,
		publisher:    publisher,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithBusinessLocation sets the zone used to turn loan timestamps into
// calendar days.
func (uc *GenerateScheduleUseCase) WithBusinessLocation(loc *time.Location) *GenerateScheduleUseCase {
	uc.location = loc
	return uc
}

// Execute generates and persists the schedule. Nothing is stored when the
// engine rejects the input.
func (uc *GenerateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GenerateScheduleRequest,
) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "GenerateSchedule")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// 1. Map the request onto the domain.
	channelingType, err := valueobject.NewChannelingType(req.ChannelingType)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.LoanID == "" {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: loan id is required", ErrInvalidRequest)
	}
	span.SetAttributes(
		attribute.String("loan.id", req.LoanID),
		attribute.String("channeling.type", channelingType.String()),
		attribute.Int("loan.duration_months", req.DurationMonths),
	)

	// 2. Resolve partner pricing.
	var rates valueobject.RateConfig
	if channelingType.Strategy() == valueobject.StrategyBNI {
		rates, err = uc.resolveRates(ctx, channelingType)
		if err != nil {
			return dto.ScheduleResponse{}, err
		}
	}

	// 3. Run the engine.
	in := toAmortizationInput(req)
	in.BusinessLocation = uc.location
	schedule, err := model.GenerateSchedule(channelingType, in, rates)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	// 4. Persist all rows in one go.
	if err := uc.scheduleRepo.ReplaceForLoan(ctx, req.LoanID, schedule.Entries); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("save schedule: %w", err)
	}

	// 5. Publish domain events.
	evt := event.NewChannelingScheduleGenerated(
		req.LoanID, req.TenantID, channelingType.String(),
		req.Principal, schedule.TotalInterest(), schedule.TotalDue(),
		len(schedule.Entries), uc.now(),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.WarnContext(ctx, "schedule stored, event not published",
			"loan_id", req.LoanID,
			"error", err,
		)
		return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w: %w", ErrEventNotPublished, err)
	}

	uc.logger.InfoContext(ctx, "channeling schedule generated",
		"loan_id", req.LoanID,
		"channeling_type", channelingType.String(),
		"installments", len(schedule.Entries),
		"total_interest", schedule.TotalInterest().String(),
	)

	return toScheduleResponse(req.LoanID, channelingType, schedule.Entries, schedule.InterestByPayment), nil
}

// resolveRates loads the partner's active table. A partner without one is
// priced from the built-in default.
func (uc *GenerateScheduleUseCase) resolveRates(
	ctx context.Context,
	channelingType valueobject.ChannelingType,
) (valueobject.RateConfig, error) {
	rates, err := uc.rateRepo.FindActive(ctx, channelingType)
	switch {
	case errors.Is(err, port.ErrNotFound):
		uc.logger.DebugContext(ctx, "no active rate config, using default table",
			"channeling_type", channelingType.String(),
		)
		return valueobject.DefaultBNIRateConfig(), nil
	case err != nil:
		return valueobject.RateConfig{}, fmt.Errorf("find rate config: %w", err)
	}
	return rates, nil
}

func toAmortizationInput(req dto.GenerateScheduleRequest) model.AmortizationInput {
	installments := make([]model.Installment, len(req.Installments))
	for i, inst := range req.Installments {
		installments[i] = model.Installment{
			PaymentID: inst.PaymentID,
			DueDate:   inst.DueDate,
		}
	}
	return model.AmortizationInput{
		Principal:          req.Principal,
		DurationMonths:     req.DurationMonths,
		AnnualInterestRate: req.AnnualInterestRate,
		DaysInYear:         req.DaysInYear,
		DisbursementDate:   req.DisbursementDate,
		FundTransferAt:     req.FundTransferAt,
		LoanCreatedAt:      req.LoanCreatedAt,
		Installments:       installments,
	}
}
