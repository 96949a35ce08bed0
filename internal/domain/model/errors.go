package model

// DomainError reports input the amortization formulas cannot be evaluated on.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return "amortization: " + e.Reason }

// InputInconsistencyError reports installments that do not line up with the
// loan they are supposed to describe.
type InputInconsistencyError struct {
	Reason string
}

func (e *InputInconsistencyError) Error() string { return "amortization input: " + e.Reason }

var (
	ErrInvalidDuration   = &DomainError{Reason: "invalid duration"}
	ErrInvalidRate       = &DomainError{Reason: "invalid rate"}
	ErrInvalidDaysInYear = &DomainError{Reason: "invalid days in year"}
	ErrInvalidPrincipal  = &DomainError{Reason: "invalid principal"}
)
