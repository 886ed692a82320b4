package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNetworkAddress(t *testing.T) {
	pubkey, host, err := splitNetworkAddress("asdf12345@localhost")
	assert.Nil(t, err)
	assert.Equal(t, "asdf12345", pubkey)
	assert.Equal(t, "localhost", host)

	pubkey, host, err = splitNetworkAddress("abc@host:9735")
	assert.Nil(t, err)
	assert.Equal(t, "abc", pubkey)
	assert.Equal(t, "host:9735", host)

	_, _, err = splitNetworkAddress("nohost")
	assert.NotNil(t, err)

	_, _, err = splitNetworkAddress("@localhost")
	assert.NotNil(t, err)

	_, _, err = splitNetworkAddress("pubkey@")
	assert.NotNil(t, err)
}
