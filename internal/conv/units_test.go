package conv

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommonToBaseUnits(t *testing.T) {
	quantums := decimal.RequireFromString("100000000")

	baseUnits, err := CommonToBaseUnits("0.10000000", quantums)
	assert.Nil(t, err)
	assert.Equal(t, "10000000", baseUnits.String())

	baseUnits, err = CommonToBaseUnits("0.00000001", quantums)
	assert.Nil(t, err)
	assert.Equal(t, "1", baseUnits.String())

	_, err = CommonToBaseUnits("0.000000015", quantums)
	assert.NotNil(t, err)

	_, err = CommonToBaseUnits("nope", quantums)
	assert.NotNil(t, err)
}

func TestStringToBig(t *testing.T) {
	n1, err := StringToBig("100")
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100).Cmp(n1), 0)

	n2, err := StringToBig("nope")
	assert.NotNil(t, err)
	assert.Nil(t, n2)
}

func TestStringToDecimal(t *testing.T) {
	d, err := StringToDecimal("16777215")
	assert.Nil(t, err)
	assert.Equal(t, "16777215", d.String())

	_, err = StringToDecimal("nope")
	assert.NotNil(t, err)
}
