package engine

import (
	"context"

	"github.com/shopspring/decimal"
)

// Engine is the capability set the broker requires from a single ledger. One
// instance exists per supported asset symbol; the broker never reaches into
// an engine's ledger state directly, it only invokes these operations.
type Engine interface {
	// Symbol returns the asset symbol this engine serves, e.g. "BTC".
	Symbol() string

	// QuantumsPerCommon is the scale factor from the asset's common unit to
	// its indivisible base unit.
	QuantumsPerCommon() decimal.Decimal

	// MaxChannelBalance is the largest channel, in base units, the engine
	// will open.
	MaxChannelBalance() decimal.Decimal

	// CreateChannel opens an outbound channel to the given payment network
	// address, funded with the given amount of base units.
	CreateChannel(ctx context.Context, address string, baseUnits decimal.Decimal) error

	// GetMaxChannel reports the balance of the largest currently open
	// channel in base units. Zero means no channel is open.
	GetMaxChannel(ctx context.Context) (decimal.Decimal, error)

	// GetPaymentChannelNetworkAddress returns the address other nodes use to
	// open channels toward this engine's ledger identity.
	GetPaymentChannelNetworkAddress(ctx context.Context) (string, error)
}
