package exchange

import (
	"sync"

	"github.com/go-errors/errors"
	"github.com/shopspring/decimal"
)

// Converter converts an amount of one asset into its equivalent in another
// asset at the current exchange rate. The amount is denominated in the from
// asset's base units; the result is denominated in the unit system the
// relayer expects when opening a channel in the to asset.
type Converter interface {
	ConvertBalance(amount decimal.Decimal, from string, to string) (decimal.Decimal, error)
}

// RateTable is a Converter backed by an in-memory table of pairwise rates.
// Rates are seeded from configuration at startup and may be replaced at
// runtime while commitments are in flight.
type RateTable struct {
	mtx   sync.RWMutex
	rates map[string]decimal.Decimal
}

func NewRateTable() *RateTable {
	return &RateTable{
		rates: make(map[string]decimal.Decimal),
	}
}

func (t *RateTable) SetRate(from string, to string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return errors.New("exchange rate must be positive")
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.rates[from+"/"+to] = rate
	t.rates[to+"/"+from] = decimal.NewFromInt(1).Div(rate)
	return nil
}

func (t *RateTable) ConvertBalance(amount decimal.Decimal, from string, to string) (decimal.Decimal, error) {
	t.mtx.RLock()
	rate, ok := t.rates[from+"/"+to]
	t.mtx.RUnlock()

	if !ok {
		return decimal.Zero, errors.New("no exchange rate available for " + from + "/" + to)
	}

	return amount.Mul(rate), nil
}
