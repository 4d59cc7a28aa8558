// Package hasher computes commitments over field elements.
//
// Elements are serialized little-endian and hashed with Keccak-256; the
// 32-byte result is split into four 8-byte limbs, each reduced into the field.
package hasher

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meshplus/txkernel/pkg/felt"
)

// HashElements returns the commitment to an ordered sequence of elements.
func HashElements(elements []felt.Felt) felt.Digest {
	buf := make([]byte, 0, len(elements)*felt.ElementBytes)
	for _, e := range elements {
		b := e.Bytes()
		buf = append(buf, b[:]...)
	}
	return digestFromHash(crypto.Keccak256(buf))
}

// HashWords hashes the concatenation of words.
func HashWords(words ...felt.Word) felt.Digest {
	return HashElements(felt.FlattenWords(words))
}

// Merge returns the 2-to-1 hash of two digests.
func Merge(left, right felt.Digest) felt.Digest {
	return HashWords(left.Word(), right.Word())
}

func digestFromHash(h []byte) felt.Digest {
	var d felt.Digest
	for i := range d {
		d[i] = felt.New(binary.LittleEndian.Uint64(h[i*felt.ElementBytes:]))
	}
	return d
}
