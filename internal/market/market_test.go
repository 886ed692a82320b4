package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	m, err := Parse("BTC/LTC")
	assert.Nil(t, err)
	assert.Equal(t, "BTC/LTC", m.Name)
	assert.Equal(t, "BTC", m.BaseSymbol)
	assert.Equal(t, "LTC", m.CounterSymbol)

	_, err = Parse("BTCLTC")
	assert.NotNil(t, err)

	_, err = Parse("BTC/")
	assert.NotNil(t, err)

	_, err = Parse("/LTC")
	assert.NotNil(t, err)
}

func TestInverseSymbol(t *testing.T) {
	m, _ := Parse("BTC/LTC")

	inverse, err := m.InverseSymbol("BTC")
	assert.Nil(t, err)
	assert.Equal(t, "LTC", inverse)

	inverse, err = m.InverseSymbol("LTC")
	assert.Nil(t, err)
	assert.Equal(t, "BTC", inverse)

	_, err = m.InverseSymbol("ETH")
	assert.NotNil(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("BTC/LTC")
	assert.False(t, ok)

	m, _ := Parse("BTC/LTC")
	r.Track(m)

	got, ok := r.Get("BTC/LTC")
	assert.True(t, ok)
	assert.Equal(t, m, got)
	assert.Equal(t, []string{"BTC/LTC"}, r.Names())
}
