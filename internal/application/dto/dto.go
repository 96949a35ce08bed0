package dto

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// InstallmentRequest is one unpaid payment, in installment order.
type InstallmentRequest struct {
	PaymentID string     `json:"payment_id"`
	DueDate   civil.Date `json:"due_date"`
}

// GenerateScheduleRequest carries a loan that is about to be channeled.
type GenerateScheduleRequest struct {
	LoanCreatedAt      time.Time            `json:"loan_created_at"`
	FundTransferAt     *time.Time           `json:"fund_transfer_at,omitempty"`
	DisbursementDate   civil.Date           `json:"disbursement_date"`
	TenantID           string               `json:"tenant_id"`
	LoanID             string               `json:"loan_id"`
	ChannelingType     string               `json:"channeling_type"`
	Principal          decimal.Decimal      `json:"principal"`
	AnnualInterestRate decimal.Decimal      `json:"annual_interest_rate"`
	Installments       []InstallmentRequest `json:"installments"`
	DurationMonths     int                  `json:"duration_months"`
	DaysInYear         int                  `json:"days_in_year"`
}

// GetScheduleRequest identifies a stored schedule.
type GetScheduleRequest struct {
	LoanID string `json:"loan_id"`
}

// UpsertRateConfigRequest replaces a partner's tenure rate table.
type UpsertRateConfigRequest struct {
	Rates          map[string]decimal.Decimal `json:"rates"`
	ChannelingType string                     `json:"channeling_type"`
	Active         bool                       `json:"active"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleEntryResponse is the external representation of a schedule row.
type ScheduleEntryResponse struct {
	DueDate              civil.Date      `json:"due_date"`
	PaymentID            string          `json:"payment_id"`
	ChannelingType       string          `json:"channeling_type"`
	DueAmount            decimal.Decimal `json:"due_amount"`
	PrincipalAmount      decimal.Decimal `json:"principal_amount"`
	InterestAmount       decimal.Decimal `json:"interest_amount"`
	ActualDailyInterest  decimal.Decimal `json:"actual_daily_interest"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
}

// ScheduleResponse is the external representation of a channeling schedule.
type ScheduleResponse struct {
	InterestByPayment map[string]decimal.Decimal `json:"interest_by_payment"`
	LoanID            string                     `json:"loan_id"`
	ChannelingType    string                     `json:"channeling_type"`
	Entries           []ScheduleEntryResponse    `json:"entries"`
	TotalPrincipal    decimal.Decimal            `json:"total_principal"`
	TotalInterest     decimal.Decimal            `json:"total_interest"`
	TotalDue          decimal.Decimal            `json:"total_due"`
}

// RateConfigResponse is the external representation of a partner rate table.
type RateConfigResponse struct {
	Rates          map[string]decimal.Decimal `json:"rates"`
	ChannelingType string                     `json:"channeling_type"`
	Active         bool                       `json:"active"`
}
