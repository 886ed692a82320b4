package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateTable_ConvertBalance(t *testing.T) {
	table := NewRateTable()

	_, err := table.ConvertBalance(decimal.RequireFromString("10000000"), "BTC", "LTC")
	assert.NotNil(t, err)

	err = table.SetRate("BTC", "LTC", decimal.RequireFromString("60"))
	assert.Nil(t, err)

	converted, err := table.ConvertBalance(decimal.RequireFromString("10000000"), "BTC", "LTC")
	assert.Nil(t, err)
	assert.Equal(t, "600000000", converted.String())
}

func TestRateTable_InverseRate(t *testing.T) {
	table := NewRateTable()
	assert.Nil(t, table.SetRate("BTC", "LTC", decimal.RequireFromString("50")))

	converted, err := table.ConvertBalance(decimal.RequireFromString("100"), "LTC", "BTC")
	assert.Nil(t, err)
	assert.Equal(t, "2", converted.String())
}

func TestRateTable_RejectsNonPositiveRate(t *testing.T) {
	table := NewRateTable()
	assert.NotNil(t, table.SetRate("BTC", "LTC", decimal.Zero))
	assert.NotNil(t, table.SetRate("BTC", "LTC", decimal.RequireFromString("-1")))
}
