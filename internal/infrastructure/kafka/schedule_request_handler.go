package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/application/usecase"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	pkgkafka "github.com/bibbank/bib/services/channeling-service/pkg/kafka"
)

// ScheduleGenerator is satisfied by *usecase.GenerateScheduleUseCase.
type ScheduleGenerator interface {
	Execute(ctx context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error)
}

var tracer = otel.Tracer("github.com/bibbank/bib/services/channeling-service/internal/infrastructure/kafka")

// NewScheduleRequestHandler returns a consumer handler that generates a
// schedule for every schedule request message. Messages that can never
// succeed are logged and acknowledged; other failures are returned so the
// consumer retries the same message.
func NewScheduleRequestHandler(generator ScheduleGenerator, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) (err error) {
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Headers))
		ctx, span := tracer.Start(ctx, "ScheduleRequest process",
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(attribute.String("messaging.kafka.message.key", string(msg.Key))),
		)
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}()

		var req dto.GenerateScheduleRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logger.WarnContext(ctx, "dropping undecodable schedule request",
				"key", string(msg.Key),
				"error", err,
			)
			return nil
		}
		if req.TenantID == "" {
			req.TenantID = msg.Headers["tenant_id"]
		}

		_, err = generator.Execute(ctx, req)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			logger.WarnContext(ctx, "rejecting schedule request",
				"loan_id", req.LoanID,
				"channeling_type", req.ChannelingType,
				"error", err,
			)
			return nil
		}
		return err
	}
}

func isPermanent(err error) bool {
	var (
		domainErr   *model.DomainError
		mismatchErr *model.InputInconsistencyError
	)
	return errors.Is(err, usecase.ErrInvalidRequest) ||
		errors.As(err, &domainErr) ||
		errors.As(err, &mismatchErr)
}
