package felt

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, Felt(7), New(7))
	assert.Equal(t, Zero, New(Modulus))
	assert.Equal(t, Felt(5), New(Modulus+5))
	assert.Equal(t, Felt(Modulus-1), New(Modulus-1))
}

func TestFromCanonical(t *testing.T) {
	f, err := FromCanonical(Modulus - 1)
	require.Nil(t, err)
	assert.Equal(t, Modulus-1, f.Value())

	_, err = FromCanonical(Modulus)
	assert.True(t, errors.Is(err, ErrNonCanonical))
}

func TestFelt_Bytes(t *testing.T) {
	f := New(0x0102030405060708)
	b := f.Bytes()
	assert.Equal(t, [ElementBytes]byte{8, 7, 6, 5, 4, 3, 2, 1}, b)

	decoded, err := FromBytes(b[:])
	require.Nil(t, err)
	assert.Equal(t, f, decoded)

	_, err = FromBytes([]byte{1, 2, 3})
	assert.NotNil(t, err)

	_, err = FromBytes([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.True(t, errors.Is(err, ErrNonCanonical))
}

func TestFelt_UnmarshalJSON(t *testing.T) {
	var f Felt
	require.Nil(t, json.Unmarshal([]byte("42"), &f))
	assert.Equal(t, Felt(42), f)

	err := json.Unmarshal([]byte("18446744073709551615"), &f)
	assert.True(t, errors.Is(err, ErrNonCanonical))

	data, err := json.Marshal(Felt(42))
	require.Nil(t, err)
	assert.Equal(t, "42", string(data))
}

func TestFromUint16(t *testing.T) {
	assert.Equal(t, Felt(65535), FromUint16(65535))
	assert.Equal(t, Felt(3), FromUint16(3))
}
