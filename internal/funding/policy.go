package funding

import (
	"context"
	"fmt"

	"github.com/qjawe/broker/internal/engine"
	"github.com/shopspring/decimal"
)

// DefaultMinFundingBalance is the smallest commitment the broker accepts,
// in the local asset's common unit.
const DefaultMinFundingBalance = "0.00400000"

// Policy validates a requested commitment against the configured bounds and
// against the channels both engines already have open. It never opens a
// channel; its only network activity is the two read-only capacity queries.
type Policy struct {
	MinFundingBalance decimal.Decimal
}

func NewPolicy(minFundingBalance decimal.Decimal) *Policy {
	return &Policy{
		MinFundingBalance: minFundingBalance,
	}
}

// ValidateBounds runs the pure bound checks in order: minimum, local
// maximum, inverse maximum. The first failure wins.
func (p *Policy) ValidateBounds(
	requestedBalance string,
	balanceCommon decimal.Decimal,
	balanceBaseUnits decimal.Decimal,
	local engine.Engine,
	inverse engine.Engine,
) *Error {
	if balanceCommon.LessThan(p.MinFundingBalance) {
		return newError(CodeBelowMinimumBalance, fmt.Sprintf(
			"Minimum balance of %s needed to commit to the relayer.", p.MinFundingBalance))
	}

	if balanceBaseUnits.GreaterThan(local.MaxChannelBalance()) {
		return newError(CodeAboveMaximumBalance, fmt.Sprintf(
			"Maximum balance of %s exceeded for commitment of %s. Please try again.",
			local.MaxChannelBalance(), requestedBalance))
	}

	// Worst-case guard on the inverse leg: no plausible exchange rate may
	// let the commitment exceed the inverse engine's ceiling, so the bound
	// uses the inverse engine's own unit scale rather than the live rate.
	inverseBaseUnits := balanceCommon.Mul(inverse.QuantumsPerCommon())

	if inverseBaseUnits.GreaterThan(inverse.MaxChannelBalance()) {
		return newError(CodeAboveMaximumBalance, fmt.Sprintf(
			"Maximum balance of %s exceeded for commitment of %s. Please try again.",
			inverse.MaxChannelBalance(), requestedBalance))
	}

	return nil
}

type maxChannel struct {
	balance decimal.Decimal
	err     error
}

// ValidateCapacity queries both engines for their largest open channel,
// concurrently, and rejects when existing channels make the commitment
// redundant or conflicting. Outbound conflicts win over inbound ones.
// balanceBaseUnits is the requested balance in the local engine's base
// units; inboundBalance is the live-rate-converted amount the inbound
// channel would be opened with.
func (p *Policy) ValidateCapacity(
	ctx context.Context,
	requestedBalance string,
	balanceBaseUnits decimal.Decimal,
	inboundBalance decimal.Decimal,
	local engine.Engine,
	inverse engine.Engine,
) *Error {
	outboundCh := make(chan maxChannel, 1)
	inboundCh := make(chan maxChannel, 1)

	go func() {
		balance, err := local.GetMaxChannel(ctx)
		outboundCh <- maxChannel{balance: balance, err: err}
	}()
	go func() {
		balance, err := inverse.GetMaxChannel(ctx)
		inboundCh <- maxChannel{balance: balance, err: err}
	}()

	outbound := <-outboundCh
	inbound := <-inboundCh

	if outbound.err != nil {
		return wrapError(CodeFundingError, fmt.Sprintf(
			"Funding error: unable to query open channels for %s.", local.Symbol()), outbound.err)
	}

	if inbound.err != nil {
		return wrapError(CodeFundingError, fmt.Sprintf(
			"Funding error: unable to query open channels for %s.", inverse.Symbol()), inbound.err)
	}

	if outbound.balance.IsPositive() || inbound.balance.IsPositive() {
		insufficientOutbound := outbound.balance.IsPositive() && outbound.balance.LessThan(balanceBaseUnits)
		insufficientInbound := inbound.balance.IsPositive() && inbound.balance.LessThan(inboundBalance)

		if insufficientOutbound {
			return newError(CodeInsufficientOutboundChannel,
				"You have another outbound channel open with a balance lower than desired, release that channel and try again.")
		}

		if insufficientInbound {
			return newError(CodeInsufficientInboundChannel,
				"You have another inbound channel open with a balance lower than desired, release that channel and try again.")
		}

		return newError(CodeChannelAlreadySufficient, fmt.Sprintf(
			"You already have a channel open with %s or greater.", requestedBalance))
	}

	return nil
}
