package vm

import (
	"encoding/json"
	"testing"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceMap_InsertGet(t *testing.T) {
	m := NewAdviceMap()
	key := felt.Digest{1, 2, 3, 4}
	values := []felt.Felt{5, 6, 7, 8}

	m.Insert(key, values)
	values[0] = 0

	got, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, []felt.Felt{5, 6, 7, 8}, got)

	got[1] = 0
	again, _ := m.Get(key)
	assert.Equal(t, felt.Felt(6), again[1])

	_, ok = m.Get(felt.Digest{})
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestAdviceMap_Nil(t *testing.T) {
	var m *AdviceMap
	_, ok := m.Get(felt.Digest{1})
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())

	var zero AdviceMap
	zero.Insert(felt.Digest{1}, []felt.Felt{1})
	assert.Equal(t, 1, zero.Len())
}

func TestAdviceMap_Keys(t *testing.T) {
	m := NewAdviceMap()
	m.Insert(felt.Digest{2}, []felt.Felt{2})
	m.Insert(felt.Digest{1}, []felt.Felt{1})

	assert.Equal(t, []felt.Digest{{1}, {2}}, m.Keys())

	m.Insert(felt.Digest{1}, []felt.Felt{10})
	assert.Equal(t, 2, m.Len())
	v, _ := m.Get(felt.Digest{1})
	assert.Equal(t, []felt.Felt{10}, v)
}

func TestAdviceMap_JSON(t *testing.T) {
	m := NewAdviceMap()
	m.Insert(felt.Digest{1, 2, 3, 4}, []felt.Felt{1, 2, 3, 4, 5, 6, 7, 8})

	data, err := json.Marshal(m)
	require.Nil(t, err)

	parsed := NewAdviceMap()
	require.Nil(t, json.Unmarshal(data, parsed))
	assert.Equal(t, m.Keys(), parsed.Keys())

	v, ok := parsed.Get(felt.Digest{1, 2, 3, 4})
	require.True(t, ok)
	assert.Len(t, v, 8)

	empty, err := json.Marshal(&AdviceMap{})
	require.Nil(t, err)
	assert.Equal(t, "{}", string(empty))
}
