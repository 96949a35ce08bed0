package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/application/usecase"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/pkg/auth"
)

// ScheduleGenerator is satisfied by *usecase.GenerateScheduleUseCase.
type ScheduleGenerator interface {
	Execute(ctx context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error)
}

// ScheduleReader is satisfied by *usecase.GetScheduleUseCase.
type ScheduleReader interface {
	Execute(ctx context.Context, req dto.GetScheduleRequest) (dto.ScheduleResponse, error)
}

// RateConfigWriter is satisfied by *usecase.UpsertRateConfigUseCase.
type RateConfigWriter interface {
	Execute(ctx context.Context, req dto.UpsertRateConfigRequest) (dto.RateConfigResponse, error)
}

// ChannelingHandler implements ChannelingServiceServer.
type ChannelingHandler struct {
	UnimplementedChannelingServiceServer
	generate ScheduleGenerator
	get      ScheduleReader
	upsert   RateConfigWriter
	logger   *slog.Logger
}

// NewChannelingHandler creates a handler with all use-case dependencies.
func NewChannelingHandler(
	generate ScheduleGenerator,
	get ScheduleReader,
	upsert RateConfigWriter,
	logger *slog.Logger,
) *ChannelingHandler {
	return &ChannelingHandler{generate: generate, get: get, upsert: upsert, logger: logger}
}

// GenerateSchedule computes, stores and returns a loan's channeling schedule.
func (h *ChannelingHandler) GenerateSchedule(ctx context.Context, req *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	in, err := toGenerateScheduleDTO(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if in.TenantID == "" {
		if claims, ok := auth.ClaimsFromContext(ctx); ok {
			in.TenantID = claims.TenantID
		}
	}

	resp, err := h.generate.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "GenerateSchedule", err)
	}
	return &GenerateScheduleResponse{Schedule: toScheduleMessage(resp)}, nil
}

// GetSchedule returns a stored schedule.
func (h *ChannelingHandler) GetSchedule(ctx context.Context, req *GetScheduleRequest) (*GetScheduleResponse, error) {
	resp, err := h.get.Execute(ctx, dto.GetScheduleRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, h.toStatus(ctx, "GetSchedule", err)
	}
	return &GetScheduleResponse{Schedule: toScheduleMessage(resp)}, nil
}

// UpsertRateConfig replaces a partner's tenure rate table.
func (h *ChannelingHandler) UpsertRateConfig(ctx context.Context, req *UpsertRateConfigRequest) (*UpsertRateConfigResponse, error) {
	rates := make(map[string]decimal.Decimal, len(req.Rates))
	for tenure, raw := range req.Rates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "rate for tenure %s: %v", tenure, err)
		}
		rates[tenure] = d
	}

	resp, err := h.upsert.Execute(ctx, dto.UpsertRateConfigRequest{
		ChannelingType: req.ChannelingType,
		Rates:          rates,
		Active:         req.Active,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "UpsertRateConfig", err)
	}

	out := make(map[string]string, len(resp.Rates))
	for tenure, rate := range resp.Rates {
		out[tenure] = rate.String()
	}
	return &UpsertRateConfigResponse{ChannelingType: resp.ChannelingType, Rates: out, Active: resp.Active}, nil
}

// toStatus maps application errors onto gRPC codes. Unexpected errors are
// logged and hidden from the caller.
func (h *ChannelingHandler) toStatus(ctx context.Context, method string, err error) error {
	var (
		domainErr   *model.DomainError
		mismatchErr *model.InputInconsistencyError
	)
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.As(err, &domainErr),
		errors.As(err, &mismatchErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrEventNotPublished):
		h.logger.WarnContext(ctx, "channeling rpc incomplete", "method", method, "error", err)
		return status.Error(codes.Unavailable, usecase.ErrEventNotPublished.Error()+", retry the request")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "channeling rpc failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toGenerateScheduleDTO(req *GenerateScheduleRequest) (dto.GenerateScheduleRequest, error) {
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return dto.GenerateScheduleRequest{}, fmt.Errorf("principal: %w", err)
	}
	rate, err := decimal.NewFromString(req.AnnualInterestRate)
	if err != nil {
		return dto.GenerateScheduleRequest{}, fmt.Errorf("annual_interest_rate: %w", err)
	}
	disbursed, err := civil.ParseDate(req.DisbursementDate)
	if err != nil {
		return dto.GenerateScheduleRequest{}, fmt.Errorf("disbursement_date: %w", err)
	}

	out := dto.GenerateScheduleRequest{
		LoanID:             req.LoanID,
		TenantID:           req.TenantID,
		ChannelingType:     req.ChannelingType,
		Principal:          principal,
		AnnualInterestRate: rate,
		DisbursementDate:   disbursed,
		DurationMonths:     int(req.DurationMonths),
		DaysInYear:         int(req.DaysInYear),
		Installments:       make([]dto.InstallmentRequest, len(req.Installments)),
	}

	if req.LoanCreatedAt != "" {
		if out.LoanCreatedAt, err = time.Parse(time.RFC3339, req.LoanCreatedAt); err != nil {
			return dto.GenerateScheduleRequest{}, fmt.Errorf("loan_created_at: %w", err)
		}
	}
	if req.FundTransferAt != "" {
		at, err := time.Parse(time.RFC3339, req.FundTransferAt)
		if err != nil {
			return dto.GenerateScheduleRequest{}, fmt.Errorf("fund_transfer_at: %w", err)
		}
		out.FundTransferAt = &at
	}

	for i, inst := range req.Installments {
		if inst == nil {
			return dto.GenerateScheduleRequest{}, fmt.Errorf("installments[%d]: missing", i)
		}
		due, err := civil.ParseDate(inst.DueDate)
		if err != nil {
			return dto.GenerateScheduleRequest{}, fmt.Errorf("installments[%d].due_date: %w", i, err)
		}
		out.Installments[i] = dto.InstallmentRequest{PaymentID: inst.PaymentID, DueDate: due}
	}
	return out, nil
}

func toScheduleMessage(resp dto.ScheduleResponse) *Schedule {
	out := &Schedule{
		LoanID:            resp.LoanID,
		ChannelingType:    resp.ChannelingType,
		TotalPrincipal:    resp.TotalPrincipal.String(),
		TotalInterest:     resp.TotalInterest.String(),
		TotalDue:          resp.TotalDue.String(),
		InterestByPayment: make(map[string]string, len(resp.InterestByPayment)),
		Entries:           make([]*ScheduleEntry, len(resp.Entries)),
	}
	for id, interest := range resp.InterestByPayment {
		out.InterestByPayment[id] = interest.String()
	}
	for i, e := range resp.Entries {
		out.Entries[i] = &ScheduleEntry{
			PaymentID:            e.PaymentID,
			DueDate:              e.DueDate.String(),
			ChannelingType:       e.ChannelingType,
			DueAmount:            e.DueAmount.String(),
			PrincipalAmount:      e.PrincipalAmount.String(),
			InterestAmount:       e.InterestAmount.String(),
			ActualDailyInterest:  e.ActualDailyInterest.String(),
			OutstandingPrincipal: e.OutstandingPrincipal.String(),
		}
	}
	return out
}
