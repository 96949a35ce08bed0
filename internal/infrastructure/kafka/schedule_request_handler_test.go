package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/application/usecase"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	pkgkafka "github.com/bibbank/bib/services/channeling-service/pkg/kafka"
)

type generatorFunc func(ctx context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error)

func (f generatorFunc) Execute(ctx context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
	return f(ctx, req)
}

const requestJSON = `{
	"loan_id": "loan-42",
	"channeling_type": "SMF",
	"principal": "12000000",
	"annual_interest_rate": "0.18",
	"duration_months": 2,
	"days_in_year": 360,
	"disbursement_date": "2024-01-01",
	"loan_created_at": "2024-01-01T03:00:00Z",
	"installments": [
		{"payment_id": "p1", "due_date": "2024-02-01"},
		{"payment_id": "p2", "due_date": "2024-03-01"}
	]
}`

func TestScheduleRequestHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the request and generates the schedule", func(t *testing.T) {
		var got dto.GenerateScheduleRequest
		handler := NewScheduleRequestHandler(generatorFunc(func(_ context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
			got = req
			return dto.ScheduleResponse{}, nil
		}), discardLogger())

		err := handler(ctx, pkgkafka.Message{
			Key:     []byte("loan-42"),
			Value:   []byte(requestJSON),
			Headers: map[string]string{"tenant_id": "tenant-9"},
		})
		require.NoError(t, err)

		assert.Equal(t, "loan-42", got.LoanID)
		assert.Equal(t, "tenant-9", got.TenantID)
		assert.Equal(t, "12000000", got.Principal.String())
		assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 1}, got.DisbursementDate)
		require.Len(t, got.Installments, 2)
		assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 1}, got.Installments[1].DueDate)
		assert.Nil(t, got.FundTransferAt)
	})

	t.Run("drops undecodable payloads", func(t *testing.T) {
		called := false
		handler := NewScheduleRequestHandler(generatorFunc(func(context.Context, dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
			called = true
			return dto.ScheduleResponse{}, nil
		}), discardLogger())

		require.NoError(t, handler(ctx, pkgkafka.Message{Value: []byte("not json")}))
		assert.False(t, called)
	})

	permanent := []error{
		fmt.Errorf("%w: unknown partner", usecase.ErrInvalidRequest),
		fmt.Errorf("generate schedule: %w", model.ErrInvalidDuration),
		fmt.Errorf("generate schedule: %w", &model.InputInconsistencyError{Reason: "no installments"}),
	}
	for _, cause := range permanent {
		t.Run("acknowledges "+cause.Error(), func(t *testing.T) {
			handler := NewScheduleRequestHandler(generatorFunc(func(context.Context, dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
				return dto.ScheduleResponse{}, cause
			}), discardLogger())

			assert.NoError(t, handler(ctx, pkgkafka.Message{Value: []byte(requestJSON)}))
		})
	}

	t.Run("surfaces transient failures", func(t *testing.T) {
		handler := NewScheduleRequestHandler(generatorFunc(func(context.Context, dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
			return dto.ScheduleResponse{}, errors.New("save schedule: connection reset")
		}), discardLogger())

		assert.Error(t, handler(ctx, pkgkafka.Message{Value: []byte(requestJSON)}))
	})

	t.Run("redelivers when the event was not published", func(t *testing.T) {
		handler := NewScheduleRequestHandler(generatorFunc(func(context.Context, dto.GenerateScheduleRequest) (dto.ScheduleResponse, error) {
			return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w: %w", usecase.ErrEventNotPublished, errors.New("broker down"))
		}), discardLogger())

		err := handler(ctx, pkgkafka.Message{Value: []byte(requestJSON)})
		assert.ErrorIs(t, err, usecase.ErrEventNotPublished)
	})
}
