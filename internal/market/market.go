package market

import (
	"strings"

	"github.com/go-errors/errors"
)

// Market identifies a traded pair, e.g. "BTC/LTC". The base symbol is the
// left leg, the counter symbol the right leg.
type Market struct {
	Name          string
	BaseSymbol    string
	CounterSymbol string
}

func Parse(name string) (*Market, error) {
	parts := strings.Split(name, "/")

	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.New("mal-formed market name: " + name)
	}

	return &Market{
		Name:          name,
		BaseSymbol:    parts[0],
		CounterSymbol: parts[1],
	}, nil
}

// InverseSymbol resolves the market's other leg for a given symbol.
func (m *Market) InverseSymbol(symbol string) (string, error) {
	switch symbol {
	case m.BaseSymbol:
		return m.CounterSymbol, nil
	case m.CounterSymbol:
		return m.BaseSymbol, nil
	default:
		return "", errors.New(symbol + " is not part of market " + m.Name)
	}
}
