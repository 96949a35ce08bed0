package valueobject

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// ChannelingType – immutable value object
// ---------------------------------------------------------------------------

// ChannelingType identifies the funding partner a loan is channeled to.
type ChannelingType struct {
	value string
}

const (
	channelingTypeBSS     = "BSS"
	channelingTypeFAMA    = "FAMA"
	channelingTypePermata = "PERMATA"
	channelingTypeSMF     = "SMF"
	channelingTypeBJB     = "BJB"
	channelingTypeBNI     = "BNI"
	channelingTypeDBS     = "DBS"
)

var (
	ChannelingTypeBSS     = ChannelingType{value: channelingTypeBSS}
	ChannelingTypeFAMA    = ChannelingType{value: channelingTypeFAMA}
	ChannelingTypePermata = ChannelingType{value: channelingTypePermata}
	ChannelingTypeSMF     = ChannelingType{value: channelingTypeSMF}
	ChannelingTypeBJB     = ChannelingType{value: channelingTypeBJB}
	ChannelingTypeBNI     = ChannelingType{value: channelingTypeBNI}
	ChannelingTypeDBS     = ChannelingType{value: channelingTypeDBS}
)

var validChannelingTypes = map[string]ChannelingType{
	channelingTypeBSS:     ChannelingTypeBSS,
	channelingTypeFAMA:    ChannelingTypeFAMA,
	channelingTypePermata: ChannelingTypePermata,
	channelingTypeSMF:     ChannelingTypeSMF,
	channelingTypeBJB:     ChannelingTypeBJB,
	channelingTypeBNI:     ChannelingTypeBNI,
	channelingTypeDBS:     ChannelingTypeDBS,
}

// NewChannelingType parses a partner code. Matching is case-insensitive.
func NewChannelingType(s string) (ChannelingType, error) {
	v, ok := validChannelingTypes[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return ChannelingType{}, fmt.Errorf("invalid channeling type: %q", s)
	}
	return v, nil
}

// String returns the partner code.
func (c ChannelingType) String() string { return c.value }

// IsZero returns true if the type has not been initialised.
func (c ChannelingType) IsZero() bool { return c.value == "" }

// Equal returns true when both types carry the same value.
func (c ChannelingType) Equal(other ChannelingType) bool {
	return c.value == other.value
}

// Strategy returns the interest computation variant used for this partner.
func (c ChannelingType) Strategy() InterestStrategy {
	switch c.value {
	case channelingTypeBNI:
		return StrategyBNI
	case channelingTypeDBS:
		return StrategyDBS
	default:
		return StrategyGeneric
	}
}

// ---------------------------------------------------------------------------
// InterestStrategy
// ---------------------------------------------------------------------------

// InterestStrategy is the closed set of schedule computation variants.
type InterestStrategy int

const (
	StrategyGeneric InterestStrategy = iota
	StrategyBNI
	StrategyDBS
)

func (s InterestStrategy) String() string {
	switch s {
	case StrategyGeneric:
		return "generic"
	case StrategyBNI:
		return "bni"
	case StrategyDBS:
		return "dbs"
	default:
		return fmt.Sprintf("InterestStrategy(%d)", int(s))
	}
}
