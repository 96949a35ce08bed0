package model

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

var (
	one           = decimal.NewFromInt(1)
	minusOne      = decimal.NewFromInt(-1)
	monthsPerYear = decimal.NewFromInt(12)
)

// Installment is one unpaid payment of the loan being channeled.
type Installment struct {
	PaymentID string
	DueDate   civil.Date
}

// AmortizationInput is everything the engine needs to know about a loan.
// Installments must be ordered by installment number.
type AmortizationInput struct {
	LoanCreatedAt      time.Time
	FundTransferAt     *time.Time
	// BusinessLocation decides which calendar day a timestamp falls on.
	// When nil, each timestamp's own offset is used.
	BusinessLocation   *time.Location
	Principal          decimal.Decimal
	AnnualInterestRate decimal.Decimal
	DisbursementDate   civil.Date
	Installments       []Installment
	DurationMonths     int
	DaysInYear         int
}

// ScheduleEntry is the partner-facing breakdown of a single installment.
// All amounts are whole currency units.
type ScheduleEntry struct {
	DueDate              civil.Date
	ChannelingType       valueobject.ChannelingType
	PaymentID            string
	DueAmount            decimal.Decimal
	PrincipalAmount      decimal.Decimal
	InterestAmount       decimal.Decimal
	ActualDailyInterest  decimal.Decimal
	OutstandingPrincipal decimal.Decimal
}

// Schedule is the engine's output, ready to hand to a persistence sink.
type Schedule struct {
	InterestByPayment map[string]decimal.Decimal
	Entries           []ScheduleEntry
}

// TotalPrincipal sums PrincipalAmount over all entries.
func (s Schedule) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.PrincipalAmount)
	}
	return total
}

// TotalInterest sums InterestAmount over all entries.
func (s Schedule) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.InterestAmount)
	}
	return total
}

// TotalDue sums DueAmount over all entries.
func (s Schedule) TotalDue() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.DueAmount)
	}
	return total
}

// GenerateSchedule computes the channeling schedule for a loan using the
// variant registered for channelingType. rates is only consulted for
// partners with tenure-bucketed pricing; pass the zero value otherwise.
//
// The computation is pure: the same input always yields the same schedule.
func GenerateSchedule(
	channelingType valueobject.ChannelingType,
	in AmortizationInput,
	rates valueobject.RateConfig,
) (Schedule, error) {
	if channelingType.IsZero() {
		return Schedule{}, &InputInconsistencyError{Reason: "channeling type is required"}
	}

	switch channelingType.Strategy() {
	case valueobject.StrategyBNI:
		return generateBNISchedule(channelingType, in, rates)
	case valueobject.StrategyDBS:
		in.DisbursementDate = in.partnerDisbursementDate()
		return generateAnnuitySchedule(channelingType, in, RoundCeiling)
	default:
		return generateAnnuitySchedule(channelingType, in, RoundHalfEven)
	}
}

// generateAnnuitySchedule builds a decreasing-balance PMT schedule and moves
// the accumulated rounding drift into the last installment.
func generateAnnuitySchedule(
	channelingType valueobject.ChannelingType,
	in AmortizationInput,
	round RoundingPolicy,
) (Schedule, error) {
	if err := in.validate(); err != nil {
		return Schedule{}, err
	}

	monthlyRate := in.AnnualInterestRate.Div(monthsPerYear)
	if monthlyRate.LessThanOrEqual(minusOne) {
		return Schedule{}, ErrInvalidRate
	}
	installment := annuityInstallment(in.Principal, monthlyRate, in.DurationMonths)

	entries := make([]ScheduleEntry, 0, len(in.Installments))
	interestByPayment := make(map[string]decimal.Decimal, len(in.Installments))

	osPrincipal := in.Principal
	sumDue, sumInterest, sumPrincipal := decimal.Zero, decimal.Zero, decimal.Zero

	for i, inst := range in.Installments {
		interest := round(in.AnnualInterestRate.Mul(osPrincipal).Div(monthsPerYear))
		principal := round(installment.Sub(interest))
		osPrincipal = round(osPrincipal.Sub(principal))
		due := round(installment)

		entry := ScheduleEntry{
			PaymentID:            inst.PaymentID,
			DueDate:              inst.DueDate,
			DueAmount:            due,
			PrincipalAmount:      principal,
			InterestAmount:       interest,
			ChannelingType:       channelingType,
			ActualDailyInterest:  decimal.Zero,
			OutstandingPrincipal: osPrincipal,
		}
		if i == 0 {
			entry.ActualDailyInterest = actualDailyInterest(in, inst.DueDate, round)
		}

		entries = append(entries, entry)
		interestByPayment[inst.PaymentID] = interest
		sumDue = sumDue.Add(due)
		sumInterest = sumInterest.Add(interest)
		sumPrincipal = sumPrincipal.Add(principal)
	}

	last := &entries[len(entries)-1]

	if !sumPrincipal.Equal(in.Principal) {
		diff := sumPrincipal.Sub(in.Principal)
		last.PrincipalAmount = round(last.PrincipalAmount.Sub(diff))
		last.OutstandingPrincipal = round(last.OutstandingPrincipal.Add(diff))
		sumPrincipal = sumPrincipal.Sub(diff)
	}

	if expected := sumDue.Sub(sumPrincipal); !sumInterest.Equal(expected) {
		diff := sumInterest.Sub(expected)
		last.InterestAmount = round(last.InterestAmount.Sub(diff))
		interestByPayment[last.PaymentID] = last.InterestAmount
	}

	return Schedule{Entries: entries, InterestByPayment: interestByPayment}, nil
}

// annuityInstallment evaluates principal * r / (1 - (1+r)^-n). A zero rate
// leaves the formula undefined, so the principal is split evenly instead.
func annuityInstallment(principal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if monthlyRate.IsZero() {
		return principal.Div(n)
	}
	growth := one.Add(monthlyRate).Pow(n)
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one))
}

// actualDailyInterest is the day-count interest of the first period, counted
// inclusively from disbursement to the first due date.
func actualDailyInterest(in AmortizationInput, firstDue civil.Date, round RoundingPolicy) decimal.Decimal {
	diffDays := decimal.NewFromInt(int64(firstDue.DaysSince(in.DisbursementDate) + 1))
	return round(diffDays.
		Mul(in.AnnualInterestRate).
		Mul(in.Principal).
		Div(decimal.NewFromInt(int64(in.DaysInYear))))
}

// partnerDisbursementDate prefers the fund transfer timestamp, then the loan
// creation timestamp, then the caller-supplied disbursement date.
func (in AmortizationInput) partnerDisbursementDate() civil.Date {
	if in.FundTransferAt != nil {
		return in.businessDate(*in.FundTransferAt)
	}
	if !in.LoanCreatedAt.IsZero() {
		return in.businessDate(in.LoanCreatedAt)
	}
	return in.DisbursementDate
}

func (in AmortizationInput) businessDate(t time.Time) civil.Date {
	if in.BusinessLocation != nil {
		t = t.In(in.BusinessLocation)
	}
	return civil.DateOf(t)
}

func (in AmortizationInput) validate() error {
	if in.DurationMonths <= 0 {
		return ErrInvalidDuration
	}
	if len(in.Installments) == 0 {
		return &InputInconsistencyError{Reason: "no installments"}
	}
	if len(in.Installments) != in.DurationMonths {
		return &InputInconsistencyError{Reason: "installment count does not match duration"}
	}

	seen := make(map[string]struct{}, len(in.Installments))
	for i, inst := range in.Installments {
		if inst.PaymentID == "" {
			return &InputInconsistencyError{Reason: "installment without payment id"}
		}
		if _, dup := seen[inst.PaymentID]; dup {
			return &InputInconsistencyError{Reason: "duplicate payment id " + inst.PaymentID}
		}
		seen[inst.PaymentID] = struct{}{}

		if !inst.DueDate.IsValid() {
			return &InputInconsistencyError{Reason: "invalid due date for payment " + inst.PaymentID}
		}
		if i > 0 && inst.DueDate.Before(in.Installments[i-1].DueDate) {
			return &InputInconsistencyError{Reason: "installments are not ordered by due date"}
		}
	}

	if !in.DisbursementDate.IsValid() {
		return &InputInconsistencyError{Reason: "disbursement date is required"}
	}
	if in.Installments[0].DueDate.Before(in.DisbursementDate) {
		return &InputInconsistencyError{Reason: "first due date precedes disbursement"}
	}
	if in.DaysInYear <= 0 {
		return ErrInvalidDaysInYear
	}
	if !in.Principal.IsPositive() || !in.Principal.Equal(in.Principal.Truncate(0)) {
		return ErrInvalidPrincipal
	}
	return nil
}
