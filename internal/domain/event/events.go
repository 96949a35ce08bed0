package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeChannelingScheduleGenerated = "lending.channeling.schedule_generated"
	TypeChannelingRateConfigUpdated = "lending.channeling.rate_config_updated"
)

// ChannelingScheduleGenerated is raised once a schedule has been computed and
// stored for a loan.
type ChannelingScheduleGenerated struct {
	events.BaseEvent
	ChannelingType string          `json:"channeling_type"`
	Principal      decimal.Decimal `json:"principal"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalDue       decimal.Decimal `json:"total_due"`
	Installments   int             `json:"installments"`
}

func NewChannelingScheduleGenerated(
	loanID, tenantID, channelingType string,
	principal, totalInterest, totalDue decimal.Decimal,
	installments int, now time.Time,
) ChannelingScheduleGenerated {
	return ChannelingScheduleGenerated{
		BaseEvent:      events.NewBaseEventAt(TypeChannelingScheduleGenerated, loanID, "ChannelingSchedule", tenantID, now),
		ChannelingType: channelingType,
		Principal:      principal,
		TotalInterest:  totalInterest,
		TotalDue:       totalDue,
		Installments:   installments,
	}
}

// ChannelingRateConfigUpdated is raised when a partner's tenure table changes.
type ChannelingRateConfigUpdated struct {
	events.BaseEvent
	Rates  map[string]decimal.Decimal `json:"rates"`
	Active bool                       `json:"active"`
}

func NewChannelingRateConfigUpdated(
	channelingType string,
	rates map[string]decimal.Decimal,
	active bool, now time.Time,
) ChannelingRateConfigUpdated {
	return ChannelingRateConfigUpdated{
		BaseEvent: events.NewBaseEventAt(TypeChannelingRateConfigUpdated, channelingType, "ChannelingRateConfig", "", now),
		Rates:     rates,
		Active:    active,
	}
}
