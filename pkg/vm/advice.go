package vm

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/meshplus/txkernel/pkg/felt"
)

// AdviceMap is the side channel through which a program exposes data too
// large for the stack, keyed by a commitment to that data.
type AdviceMap struct {
	entries map[felt.Digest][]felt.Felt
}

func NewAdviceMap() *AdviceMap {
	return &AdviceMap{entries: make(map[felt.Digest][]felt.Felt)}
}

// Insert stores a copy of values under key, replacing any previous entry.
func (m *AdviceMap) Insert(key felt.Digest, values []felt.Felt) {
	if m.entries == nil {
		m.entries = make(map[felt.Digest][]felt.Felt)
	}
	owned := make([]felt.Felt, len(values))
	copy(owned, values)
	m.entries[key] = owned
}

// Get returns a copy of the values stored under key.
func (m *AdviceMap) Get(key felt.Digest) ([]felt.Felt, bool) {
	if m == nil {
		return nil, false
	}
	values, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]felt.Felt, len(values))
	copy(out, values)
	return out, true
}

func (m *AdviceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys ordered by their byte encoding.
func (m *AdviceMap) Keys() []felt.Digest {
	if m == nil {
		return nil
	}
	keys := make([]felt.Digest, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) < 0
	})
	return keys
}

func (m *AdviceMap) MarshalJSON() ([]byte, error) {
	if m == nil || m.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}

func (m *AdviceMap) UnmarshalJSON(data []byte) error {
	entries := make(map[felt.Digest][]felt.Felt)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	m.entries = entries
	return nil
}

// AdviceInputs is the non-deterministic input the host hands to a program
// alongside its stack inputs.
type AdviceInputs struct {
	Stack []felt.Felt `json:"stack"`
	Map   *AdviceMap  `json:"map"`
}
