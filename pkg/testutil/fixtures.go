package testutil

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Fixed identifiers for deterministic tests.
const (
	TestTenantID = "00000000-0000-0000-0000-000000000010"
	TestLoanID   = "00000000-0000-0000-0000-000000000100"
)

// MonthlyDueDates returns n due dates one calendar month apart.
func MonthlyDueDates(first civil.Date, n int) []civil.Date {
	out := make([]civil.Date, n)
	for i := range out {
		out[i] = civil.DateOf(first.In(time.UTC).AddDate(0, i, 0))
	}
	return out
}

// PaymentID is the payment identifier used for installment i (1-based).
func PaymentID(loanID string, i int) string {
	return fmt.Sprintf("%s-%02d", loanID, i)
}
