package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// GetScheduleUseCase reads back a stored channeling schedule.
type GetScheduleUseCase struct {
	scheduleRepo port.ScheduleRepository
}

// NewGetScheduleUseCase wires dependencies.
func NewGetScheduleUseCase(scheduleRepo port.ScheduleRepository) *GetScheduleUseCase {
	return &GetScheduleUseCase{scheduleRepo: scheduleRepo}
}

// Execute returns port.ErrNotFound (wrapped) when the loan has no schedule.
func (uc *GetScheduleUseCase) Execute(ctx context.Context, req dto.GetScheduleRequest) (dto.ScheduleResponse, error) {
	if req.LoanID == "" {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: loan id is required", ErrInvalidRequest)
	}

	entries, err := uc.scheduleRepo.FindByLoanID(ctx, req.LoanID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("find schedule: %w", err)
	}
	if len(entries) == 0 {
		return dto.ScheduleResponse{}, fmt.Errorf("find schedule: %w", port.ErrNotFound)
	}

	interest := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		interest[e.PaymentID] = e.InterestAmount
	}
	return toScheduleResponse(req.LoanID, entries[0].ChannelingType, entries, interest), nil
}

func toScheduleResponse(
	loanID string,
	channelingType valueobject.ChannelingType,
	entries []model.ScheduleEntry,
	interestByPayment map[string]decimal.Decimal,
) dto.ScheduleResponse {
	sched := model.Schedule{Entries: entries, InterestByPayment: interestByPayment}

	out := make([]dto.ScheduleEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.ScheduleEntryResponse{
			PaymentID:            e.PaymentID,
			DueDate:              e.DueDate,
			ChannelingType:       e.ChannelingType.String(),
			DueAmount:            e.DueAmount,
			PrincipalAmount:      e.PrincipalAmount,
			InterestAmount:       e.InterestAmount,
			ActualDailyInterest:  e.ActualDailyInterest,
			OutstandingPrincipal: e.OutstandingPrincipal,
		}
	}

	return dto.ScheduleResponse{
		LoanID:            loanID,
		ChannelingType:    channelingType.String(),
		Entries:           out,
		InterestByPayment: interestByPayment,
		TotalPrincipal:    sched.TotalPrincipal(),
		TotalInterest:     sched.TotalInterest(),
		TotalDue:          sched.TotalDue(),
	}
}
