package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// nominalMonthDays is the period length BNI prices a month at.
const nominalMonthDays = 30

var thirty = decimal.NewFromInt(nominalMonthDays)

// generateBNISchedule prices the loan with a flat monthly rate resolved from
// the tenure table and splits principal and interest evenly over every
// installment. A first period longer than a nominal month is charged pro rata.
//
// No reconciliation is applied: when principal does not divide evenly by the
// duration the installment principals do not sum back to it.
func generateBNISchedule(
	channelingType valueobject.ChannelingType,
	in AmortizationInput,
	rates valueobject.RateConfig,
) (Schedule, error) {
	if err := in.validate(); err != nil {
		return Schedule{}, err
	}

	annualRate := rates.ResolveAnnualRate(in.AnnualInterestRate, in.DurationMonths)
	monthlyRate := RoundMonthlyRate(annualRate.Div(monthsPerYear))

	months := decimal.NewFromInt(int64(in.DurationMonths))
	diffDays := in.Installments[0].DueDate.DaysSince(in.DisbursementDate)

	var totalInterest decimal.Decimal
	if diffDays <= nominalMonthDays {
		totalInterest = monthlyRate.Mul(months).Mul(in.Principal)
	} else {
		totalDays := decimal.NewFromInt(int64(in.DurationMonths*nominalMonthDays + (diffDays - nominalMonthDays)))
		totalInterest = monthlyRate.Mul(in.Principal).Mul(totalDays).Div(thirty)
	}

	monthlyInterest := RoundHalfEven(totalInterest.Div(months))
	monthlyPrincipal := RoundHalfEven(in.Principal.Div(months))
	due := monthlyPrincipal.Add(monthlyInterest)

	entries := make([]ScheduleEntry, 0, len(in.Installments))
	interestByPayment := make(map[string]decimal.Decimal, len(in.Installments))
	osPrincipal := in.Principal

	for _, inst := range in.Installments {
		osPrincipal = osPrincipal.Sub(monthlyPrincipal)
		entries = append(entries, ScheduleEntry{
			PaymentID:            inst.PaymentID,
			DueDate:              inst.DueDate,
			DueAmount:            due,
			PrincipalAmount:      monthlyPrincipal,
			InterestAmount:       monthlyInterest,
			ChannelingType:       channelingType,
			ActualDailyInterest:  decimal.Zero,
			OutstandingPrincipal: osPrincipal,
		})
		interestByPayment[inst.PaymentID] = monthlyInterest
	}

	return Schedule{Entries: entries, InterestByPayment: interestByPayment}, nil
}
