package funding

import (
	"context"
	"testing"

	"github.com/go-errors/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newPolicyEngines() (*stubEngine, *stubEngine) {
	local := &stubEngine{
		symbol:            "BTC",
		quantumsPerCommon: decimal.RequireFromString("100000000"),
		maxChannelBalance: decimal.RequireFromString("16777215"),
	}
	inverse := &stubEngine{
		symbol:            "LTC",
		quantumsPerCommon: decimal.RequireFromString("100000000"),
		maxChannelBalance: decimal.RequireFromString("1006632900"),
	}
	return local, inverse
}

func TestPolicy_BoundsAtMinimum(t *testing.T) {
	local, inverse := newPolicyEngines()
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	// exactly at the floor is allowed
	balance := decimal.RequireFromString("0.00400000")
	baseUnits := balance.Mul(local.quantumsPerCommon)
	assert.Nil(t, policy.ValidateBounds("0.00400000", balance, baseUnits, local, inverse))

	// one base unit below is not
	balance = decimal.RequireFromString("0.00399999")
	baseUnits = balance.Mul(local.quantumsPerCommon)
	err := policy.ValidateBounds("0.00399999", balance, baseUnits, local, inverse)
	assert.NotNil(t, err)
	assert.Equal(t, CodeBelowMinimumBalance, err.Code)
}

func TestPolicy_BoundsAtLocalCeiling(t *testing.T) {
	local, inverse := newPolicyEngines()
	inverse.maxChannelBalance = decimal.RequireFromString("16777215")
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	// exactly at the ceiling is allowed
	balance := decimal.RequireFromString("0.16777215")
	baseUnits := balance.Mul(local.quantumsPerCommon)
	assert.Nil(t, policy.ValidateBounds("0.16777215", balance, baseUnits, local, inverse))

	// one base unit above is not
	balance = decimal.RequireFromString("0.16777216")
	baseUnits = balance.Mul(local.quantumsPerCommon)
	err := policy.ValidateBounds("0.16777216", balance, baseUnits, local, inverse)
	assert.NotNil(t, err)
	assert.Equal(t, CodeAboveMaximumBalance, err.Code)
}

func TestPolicy_CapacityEqualCountsAsSufficient(t *testing.T) {
	local, inverse := newPolicyEngines()
	local.maxChannel = decimal.RequireFromString("10000000")
	inverse.maxChannel = decimal.RequireFromString("100")
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	err := policy.ValidateCapacity(
		context.Background(),
		"0.10000000",
		decimal.RequireFromString("10000000"),
		decimal.RequireFromString("100"),
		local,
		inverse,
	)

	assert.NotNil(t, err)
	assert.Equal(t, CodeChannelAlreadySufficient, err.Code)
}

func TestPolicy_CapacityNoChannels(t *testing.T) {
	local, inverse := newPolicyEngines()
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	err := policy.ValidateCapacity(
		context.Background(),
		"0.10000000",
		decimal.RequireFromString("10000000"),
		decimal.RequireFromString("100"),
		local,
		inverse,
	)

	assert.Nil(t, err)
	assert.Equal(t, 1, local.maxChannelCalls)
	assert.Equal(t, 1, inverse.maxChannelCalls)
}

func TestPolicy_CapacityQueryFails(t *testing.T) {
	local, inverse := newPolicyEngines()
	inverse.maxChannelErr = errors.New("engine unavailable")
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	err := policy.ValidateCapacity(
		context.Background(),
		"0.10000000",
		decimal.RequireFromString("10000000"),
		decimal.RequireFromString("100"),
		local,
		inverse,
	)

	assert.NotNil(t, err)
	assert.Equal(t, CodeFundingError, err.Code)
	assert.Contains(t, err.Message, "LTC")
	assert.False(t, err.Partial)
}

func TestPolicy_OutboundConflictCheckedFirst(t *testing.T) {
	local, inverse := newPolicyEngines()
	local.maxChannel = decimal.RequireFromString("1000")
	inverse.maxChannel = decimal.RequireFromString("10")
	policy := NewPolicy(decimal.RequireFromString("0.00400000"))

	err := policy.ValidateCapacity(
		context.Background(),
		"0.10000000",
		decimal.RequireFromString("10000000"),
		decimal.RequireFromString("100"),
		local,
		inverse,
	)

	assert.NotNil(t, err)
	assert.Equal(t, CodeInsufficientOutboundChannel, err.Code)
}
