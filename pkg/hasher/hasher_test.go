package hasher

import (
	"testing"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/stretchr/testify/assert"
)

func TestHashElements(t *testing.T) {
	a := HashElements([]felt.Felt{1, 2, 3, 4})
	b := HashElements([]felt.Felt{1, 2, 3, 4})
	c := HashElements([]felt.Felt{4, 3, 2, 1})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsEmpty())

	for _, e := range a {
		assert.True(t, e.Value() < felt.Modulus)
	}
}

func TestHashElements_Empty(t *testing.T) {
	assert.Equal(t, HashElements(nil), HashElements([]felt.Felt{}))
}

func TestMerge(t *testing.T) {
	left := felt.Digest{1, 2, 3, 4}
	right := felt.Digest{5, 6, 7, 8}

	assert.Equal(t, HashElements([]felt.Felt{1, 2, 3, 4, 5, 6, 7, 8}), Merge(left, right))
	assert.NotEqual(t, Merge(left, right), Merge(right, left))
	assert.Equal(t, Merge(left, right), HashWords(left.Word(), right.Word()))
}
