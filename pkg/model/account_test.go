package model

import (
	"encoding/json"
	"testing"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountID_Type(t *testing.T) {
	id := AccountID(7)
	assert.Equal(t, RegularAccountImmutableCode, id.Type())
	assert.False(t, id.IsFaucet())
	assert.False(t, id.IsOnChain())

	faucet, err := AccountIDFromUint64(0b10<<62 | 1<<61 | 42)
	require.Nil(t, err)
	assert.Equal(t, FungibleFaucet, faucet.Type())
	assert.True(t, faucet.IsFaucet())
	assert.True(t, faucet.IsOnChain())
	assert.Equal(t, "fungible-faucet", faucet.Type().String())

	_, err = AccountIDFromUint64(felt.Modulus)
	assert.NotNil(t, err)
}

func TestAccountID_Text(t *testing.T) {
	id := AccountID(0x1234)
	data, err := json.Marshal(id)
	require.Nil(t, err)
	assert.Equal(t, `"0x0000000000001234"`, string(data))

	var parsed AccountID
	require.Nil(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, id, parsed)

	assert.NotNil(t, json.Unmarshal([]byte(`"0xzz"`), &parsed))
}

func TestAccountStub_Hash(t *testing.T) {
	stub := &AccountStub{
		ID:          7,
		Nonce:       1,
		VaultRoot:   felt.Digest{1, 1, 1, 1},
		StorageRoot: felt.Digest{2, 2, 2, 2},
		CodeRoot:    felt.Digest{3, 3, 3, 3},
	}

	words := stub.Words()
	require.Len(t, words, AccountStubWords)
	assert.Equal(t, felt.Word{7, 0, 0, 1}, words[0])
	assert.Equal(t, felt.Word{3, 3, 3, 3}, words[3])

	h := stub.Hash()
	assert.Equal(t, h, stub.Hash())

	other := *stub
	other.Nonce = 2
	assert.NotEqual(t, h, other.Hash())
}
