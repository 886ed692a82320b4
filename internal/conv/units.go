package conv

import (
	"math/big"

	"github.com/go-errors/errors"
	"github.com/shopspring/decimal"
)

// CommonToBaseUnits converts a balance denominated in an asset's common unit
// (e.g. whole BTC) into the ledger's indivisible base unit. The result must
// be a whole number of base units; fractional results are an error rather
// than being rounded.
func CommonToBaseUnits(balance string, quantumsPerCommon decimal.Decimal) (decimal.Decimal, error) {
	common, err := decimal.NewFromString(balance)

	if err != nil {
		return decimal.Zero, errors.New("cannot parse balance " + balance + " as a decimal")
	}

	baseUnits := common.Mul(quantumsPerCommon)

	if !baseUnits.IsInteger() {
		return decimal.Zero, errors.New("balance " + balance + " is not a whole number of base units")
	}

	return baseUnits, nil
}

func StringToBig(num string) (*big.Int, error) {
	out, success := big.NewInt(0).SetString(num, 10)

	if !success {
		return nil, errors.New("cannot convert " + num + " to bigint")
	}

	return out, nil
}

// StringToDecimal parses an integer-string engine field (quantumsPerCommon,
// maxChannelBalance) into a decimal.
func StringToDecimal(num string) (decimal.Decimal, error) {
	out, err := decimal.NewFromString(num)

	if err != nil {
		return decimal.Zero, errors.New("cannot convert " + num + " to decimal")
	}

	return out, nil
}
