package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/channeling-service/internal/application/dto"
	"github.com/bibbank/bib/services/channeling-service/internal/application/usecase"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/event"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port/mocks"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

func TestUpsertRateConfig_Execute(t *testing.T) {
	ctx := context.Background()
	rates := map[string]decimal.Decimal{
		"3":  decimal.RequireFromString("1.75"),
		"12": decimal.RequireFromString("3.25"),
	}

	t.Run("saves the table and announces it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		publisher := mocks.NewMockEventPublisher(ctrl)

		repo.EXPECT().
			Save(gomock.Any(), valueobject.ChannelingTypeBNI, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ valueobject.ChannelingType, cfg valueobject.RateConfig) error {
				assert.True(t, cfg.Active())
				assert.True(t, cfg.Addend(12).Equal(decimal.RequireFromString("3.25")))
				return nil
			})
		publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evts ...event.DomainEvent) error {
				require.Len(t, evts, 1)
				assert.Equal(t, event.TypeChannelingRateConfigUpdated, evts[0].EventType())
				assert.Equal(t, "BNI", evts[0].AggregateID())
				return nil
			})

		uc := usecase.NewUpsertRateConfigUseCase(repo, publisher, discardLogger())
		resp, err := uc.Execute(ctx, dto.UpsertRateConfigRequest{ChannelingType: "bni", Rates: rates, Active: true})
		require.NoError(t, err)

		assert.Equal(t, "BNI", resp.ChannelingType)
		assert.True(t, resp.Active)
		assert.Len(t, resp.Rates, 2)
	})

	t.Run("rejects malformed tenures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := usecase.NewUpsertRateConfigUseCase(mocks.NewMockRateConfigRepository(ctrl), mocks.NewMockEventPublisher(ctrl), discardLogger())

		for _, tenure := range []string{"0", "-1", "six", ""} {
			_, err := uc.Execute(ctx, dto.UpsertRateConfigRequest{
				ChannelingType: "BNI",
				Rates:          map[string]decimal.Decimal{tenure: decimal.NewFromInt(1)},
			})
			assert.ErrorIs(t, err, usecase.ErrInvalidRequest, tenure)
		}
	})

	t.Run("rejects negative addends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := usecase.NewUpsertRateConfigUseCase(mocks.NewMockRateConfigRepository(ctrl), mocks.NewMockEventPublisher(ctrl), discardLogger())

		_, err := uc.Execute(ctx, dto.UpsertRateConfigRequest{
			ChannelingType: "BNI",
			Rates:          map[string]decimal.Decimal{"6": decimal.NewFromInt(-1)},
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})

	t.Run("rejects an unknown partner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := usecase.NewUpsertRateConfigUseCase(mocks.NewMockRateConfigRepository(ctrl), mocks.NewMockEventPublisher(ctrl), discardLogger())

		_, err := uc.Execute(ctx, dto.UpsertRateConfigRequest{ChannelingType: "ACME", Rates: rates})
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})

	t.Run("save failures are surfaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))

		uc := usecase.NewUpsertRateConfigUseCase(repo, mocks.NewMockEventPublisher(ctrl), discardLogger())
		_, err := uc.Execute(ctx, dto.UpsertRateConfigRequest{ChannelingType: "BNI", Rates: rates, Active: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save rate config")
	})
}
