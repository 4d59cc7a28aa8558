package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionEvent(t *testing.T) {
	e, err := ParseTransactionEvent(0x2_0000)
	require.Nil(t, err)
	assert.Equal(t, AddAssetToAccountVault, e)
	assert.Equal(t, "AddAssetToAccountVault", e.String())

	e, err = ParseTransactionEvent(0x2_0001)
	require.Nil(t, err)
	assert.Equal(t, RemoveAssetFromAccountVault, e)

	_, err = ParseTransactionEvent(0x1_0000)
	var notEvent *NotTransactionEventError
	assert.ErrorAs(t, err, &notEvent)

	_, err = ParseTransactionEvent(0x2_0002)
	var invalid *InvalidTransactionEventError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, uint32(0x2_0002), invalid.Value)
}

func TestParseTransactionTrace(t *testing.T) {
	for v := uint32(PrologueStart); v <= uint32(EpilogueEnd); v++ {
		trace, err := ParseTransactionTrace(v)
		require.Nil(t, err)
		assert.Equal(t, TransactionTrace(v), trace)
		assert.NotContains(t, trace.String(), "TransactionTrace(")
	}
	assert.Equal(t, "EpilogueEnd", EpilogueEnd.String())

	_, err := ParseTransactionTrace(0x3_0000)
	var notTrace *NotTransactionTraceError
	assert.ErrorAs(t, err, &notTrace)

	_, err = ParseTransactionTrace(uint32(EpilogueEnd) + 1)
	var invalid *InvalidTransactionTraceError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "TransactionTrace(0x2000a)", TransactionTrace(0x2_000a).String())
}
