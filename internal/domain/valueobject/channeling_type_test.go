package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

func TestNewChannelingType(t *testing.T) {
	t.Run("parses every partner code", func(t *testing.T) {
		for _, code := range []string{"BSS", "FAMA", "PERMATA", "SMF", "BJB", "BNI", "DBS"} {
			ct, err := valueobject.NewChannelingType(code)
			require.NoError(t, err)
			assert.Equal(t, code, ct.String())
			assert.False(t, ct.IsZero())
		}
	})

	t.Run("is case insensitive and trims whitespace", func(t *testing.T) {
		ct, err := valueobject.NewChannelingType("  dbs ")
		require.NoError(t, err)
		assert.True(t, ct.Equal(valueobject.ChannelingTypeDBS))
	})

	t.Run("rejects unknown partners", func(t *testing.T) {
		for _, code := range []string{"", "XYZ", "BN I"} {
			ct, err := valueobject.NewChannelingType(code)
			assert.Error(t, err, code)
			assert.True(t, ct.IsZero())
		}
	})
}

func TestChannelingType_Strategy(t *testing.T) {
	tests := []struct {
		ct   valueobject.ChannelingType
		want valueobject.InterestStrategy
	}{
		{valueobject.ChannelingTypeBSS, valueobject.StrategyGeneric},
		{valueobject.ChannelingTypeFAMA, valueobject.StrategyGeneric},
		{valueobject.ChannelingTypePermata, valueobject.StrategyGeneric},
		{valueobject.ChannelingTypeSMF, valueobject.StrategyGeneric},
		{valueobject.ChannelingTypeBJB, valueobject.StrategyGeneric},
		{valueobject.ChannelingTypeBNI, valueobject.StrategyBNI},
		{valueobject.ChannelingTypeDBS, valueobject.StrategyDBS},
	}
	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ct.Strategy())
		})
	}

	assert.Equal(t, "bni", valueobject.StrategyBNI.String())
	assert.Equal(t, "InterestStrategy(9)", valueobject.InterestStrategy(9).String())
}
