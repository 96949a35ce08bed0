package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

func TestGenerateSchedule_BNI(t *testing.T) {
	t.Run("long first period is charged pro rata", func(t *testing.T) {
		// 45 days to the first due date, default addend for 6 months is 2pp:
		// monthly rate round4(0.20/12) = 0.0167.
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 2, 15), 360)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, valueobject.RateConfig{})
		require.NoError(t, err)
		require.Len(t, sched.Entries, 6)

		// 0.0167 * 10,000,000 * (6*30 + 15) / 30 = 1,085,500 over 6 months.
		for _, e := range sched.Entries {
			assert.True(t, e.InterestAmount.Equal(dec(180_917)), "got %s", e.InterestAmount)
			assert.True(t, e.PrincipalAmount.Equal(dec(1_666_667)), "got %s", e.PrincipalAmount)
			assert.True(t, e.DueAmount.Equal(dec(1_847_584)), "got %s", e.DueAmount)
			assert.True(t, e.ActualDailyInterest.IsZero())
			assert.True(t, e.ChannelingType.Equal(valueobject.ChannelingTypeBNI))
		}

		// Even split is not reconciled back to the principal.
		assert.True(t, sched.TotalPrincipal().Equal(dec(10_000_002)), "got %s", sched.TotalPrincipal())
		assert.True(t, sched.Entries[5].OutstandingPrincipal.Equal(dec(-2)), "got %s", sched.Entries[5].OutstandingPrincipal)
	})

	t.Run("short first period is a flat month", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 1, 21), 360)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, valueobject.RateConfig{})
		require.NoError(t, err)

		// 0.0167 * 6 * 10,000,000 = 1,002,000 over 6 months.
		assert.True(t, sched.TotalInterest().Equal(dec(1_002_000)), "got %s", sched.TotalInterest())
		for _, e := range sched.Entries {
			assert.True(t, e.InterestAmount.Equal(dec(167_000)), "got %s", e.InterestAmount)
		}
	})

	t.Run("thirty days is still a flat month", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 1, 31), 360)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, valueobject.RateConfig{})
		require.NoError(t, err)
		assert.True(t, sched.Entries[0].InterestAmount.Equal(dec(167_000)), "got %s", sched.Entries[0].InterestAmount)
	})

	t.Run("active config without the tenure adds nothing", func(t *testing.T) {
		in := loanInput(1_000_000, "0.12", 3, date(2024, 1, 1), date(2024, 2, 1), 365)
		rates := valueobject.NewRateConfig(map[string]decimal.Decimal{"12": decimal.NewFromInt(3)}, true)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, rates)
		require.NoError(t, err)

		// 0.01 * 1,000,000 * 91 / 30 over 3 months.
		for _, e := range sched.Entries {
			assert.True(t, e.InterestAmount.Equal(dec(10_111)), "got %s", e.InterestAmount)
			assert.True(t, e.PrincipalAmount.Equal(dec(333_333)), "got %s", e.PrincipalAmount)
		}
		assert.True(t, sched.Entries[2].OutstandingPrincipal.Equal(dec(1)))
	})

	t.Run("active config addend is applied", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 1, 21), 360)
		rates := valueobject.NewRateConfig(map[string]decimal.Decimal{"6": decimal.NewFromInt(4)}, true)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, rates)
		require.NoError(t, err)

		// round4(0.22/12) = 0.0183; 0.0183 * 6 * 10,000,000 / 6.
		assert.True(t, sched.Entries[0].InterestAmount.Equal(dec(183_000)), "got %s", sched.Entries[0].InterestAmount)
	})

	t.Run("inactive config falls back to the default table", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 1, 21), 360)
		rates := valueobject.NewRateConfig(map[string]decimal.Decimal{"6": decimal.NewFromInt(4)}, false)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, rates)
		require.NoError(t, err)
		assert.True(t, sched.Entries[0].InterestAmount.Equal(dec(167_000)), "got %s", sched.Entries[0].InterestAmount)
	})

	t.Run("interest map matches entries", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 2, 15), 360)

		sched, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, valueobject.RateConfig{})
		require.NoError(t, err)
		require.Len(t, sched.InterestByPayment, 6)
		for _, e := range sched.Entries {
			assert.True(t, sched.InterestByPayment[e.PaymentID].Equal(e.InterestAmount))
		}
	})

	t.Run("validation runs before pricing", func(t *testing.T) {
		in := loanInput(10_000_000, "0.18", 6, date(2024, 1, 1), date(2024, 2, 15), 360)
		in.DurationMonths = 0

		_, err := model.GenerateSchedule(valueobject.ChannelingTypeBNI, in, valueobject.RateConfig{})
		assert.ErrorIs(t, err, model.ErrInvalidDuration)
	})
}
