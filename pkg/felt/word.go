package felt

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// WordSize is the number of field elements in a Word.
const WordSize = 4

// DigestBytes is the size of a serialized Digest.
const DigestBytes = WordSize * ElementBytes

var ErrNotWordAligned = errors.New("element count is not a multiple of the word size")

// Word is four field elements. It is used both as raw data and, through
// Digest, as a hash commitment.
type Word [WordSize]Felt

// EmptyWord is the all-zero word.
var EmptyWord = Word{}

func (w Word) IsEmpty() bool {
	return w == Word{}
}

func (w Word) Elements() []Felt {
	return []Felt{w[0], w[1], w[2], w[3]}
}

// Digest is a Word interpreted as a hash commitment.
type Digest [WordSize]Felt

// EmptyDigest is the all-zero digest, used as the initial hash of an account
// that does not exist yet.
var EmptyDigest = Digest{}

func (d Digest) Word() Word {
	return Word(d)
}

func (d Digest) Elements() []Felt {
	return []Felt{d[0], d[1], d[2], d[3]}
}

func (d Digest) IsEmpty() bool {
	return d == Digest{}
}

// Bytes returns the little-endian encoding of the four elements.
func (d Digest) Bytes() []byte {
	b := make([]byte, 0, DigestBytes)
	for _, e := range d {
		eb := e.Bytes()
		b = append(b, eb[:]...)
	}
	return b
}

func (d Digest) Hex() string {
	return hexutil.Encode(d.Bytes())
}

func (d Digest) String() string {
	return d.Hex()
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

func (d *Digest) UnmarshalText(input []byte) error {
	parsed, err := DigestFromHex(string(input))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DigestFromBytes decodes 32 bytes into a Digest, rejecting non-canonical elements.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestBytes {
		return d, errors.Errorf("digest must be %d bytes, got %d", DigestBytes, len(b))
	}
	for i := range d {
		e, err := FromBytes(b[i*ElementBytes : (i+1)*ElementBytes])
		if err != nil {
			return Digest{}, errors.Wrapf(err, "digest element %d", i)
		}
		d[i] = e
	}
	return d, nil
}

// DigestFromHex parses the 0x-prefixed hex form produced by Digest.Hex.
func DigestFromHex(s string) (Digest, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Digest{}, errors.Wrap(err, "decode digest hex")
	}
	return DigestFromBytes(b)
}

// GroupWords reinterprets a flat element buffer as words. Unlike a blind
// reslice it fails when the buffer length is not a multiple of WordSize.
func GroupWords(elements []Felt) ([]Word, error) {
	if len(elements)%WordSize != 0 {
		return nil, errors.Wrapf(ErrNotWordAligned, "got %d elements", len(elements))
	}
	words := make([]Word, len(elements)/WordSize)
	for i := range words {
		copy(words[i][:], elements[i*WordSize:(i+1)*WordSize])
	}
	return words, nil
}

// FlattenWords is the inverse of GroupWords.
func FlattenWords(words []Word) []Felt {
	elements := make([]Felt, 0, len(words)*WordSize)
	for _, w := range words {
		elements = append(elements, w[:]...)
	}
	return elements
}
