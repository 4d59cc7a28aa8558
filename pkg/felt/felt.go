// Package felt implements elements of the 64-bit prime field used by the
// transaction kernel together with the 4-element Word and Digest values
// built from them.
package felt

import (
	"encoding/binary"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Modulus is the field order p = 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFFFFFF00000001

// ElementBytes is the size of a serialized field element.
const ElementBytes = 8

const (
	Zero Felt = 0
	One  Felt = 1
)

var ErrNonCanonical = errors.New("value is not a canonical field element")

// Felt is a field element kept in canonical form, i.e. always less than Modulus.
type Felt uint64

// New reduces v into the field.
func New(v uint64) Felt {
	if v >= Modulus {
		v -= Modulus
	}
	return Felt(v)
}

// FromCanonical returns v as a field element, failing if v is not already reduced.
func FromCanonical(v uint64) (Felt, error) {
	if v >= Modulus {
		return Zero, errors.Wrapf(ErrNonCanonical, "%d", v)
	}
	return Felt(v), nil
}

// FromUint16 lifts a 16-bit integer into the field. It never reduces.
func FromUint16(v uint16) Felt {
	return Felt(v)
}

func (f Felt) Value() uint64 {
	return uint64(f)
}

func (f Felt) IsZero() bool {
	return f == Zero
}

func (f Felt) String() string {
	return strconv.FormatUint(uint64(f), 10)
}

// Bytes returns the little-endian encoding of f.
func (f Felt) Bytes() [ElementBytes]byte {
	var b [ElementBytes]byte
	binary.LittleEndian.PutUint64(b[:], uint64(f))
	return b
}

// FromBytes decodes a little-endian element and rejects non-canonical values.
func FromBytes(b []byte) (Felt, error) {
	if len(b) != ElementBytes {
		return Zero, errors.Errorf("field element must be %d bytes, got %d", ElementBytes, len(b))
	}
	return FromCanonical(binary.LittleEndian.Uint64(b))
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decode field element")
	}
	e, err := FromCanonical(v)
	if err != nil {
		return err
	}
	*f = e
	return nil
}
