package vm

import (
	"encoding/json"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/pkg/errors"
)

// StackTopSize is the number of stack elements held in registers. Anything
// deeper lives in the overflow table.
const StackTopSize = 16

var ErrInvalidOverflowAddressLength = errors.New("invalid overflow address length")

// StackInputs is the initial operand stack of a program, in push order: the
// last element ends up on top of the stack.
type StackInputs struct {
	values []felt.Felt
}

func NewStackInputs(values []felt.Felt) *StackInputs {
	owned := make([]felt.Felt, len(values))
	copy(owned, values)
	return &StackInputs{values: owned}
}

// Values returns a copy of the inputs in push order.
func (s *StackInputs) Values() []felt.Felt {
	values := make([]felt.Felt, len(s.values))
	copy(values, s.values)
	return values
}

func (s *StackInputs) Len() int {
	return len(s.values)
}

func (s *StackInputs) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.values)
}

func (s *StackInputs) UnmarshalJSON(data []byte) error {
	var values []felt.Felt
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.values = values
	return nil
}

// StackOutputs is the final operand stack of a program, top first, together
// with the addresses of the overflow table rows left behind.
type StackOutputs struct {
	stack         []felt.Felt
	overflowAddrs []felt.Felt
}

// NewStackOutputs validates the overflow address count against the stack
// depth and pads the stack with zeros up to StackTopSize.
func NewStackOutputs(stack, overflowAddrs []felt.Felt) (*StackOutputs, error) {
	if expected := overflowAddrsLen(len(stack)); len(overflowAddrs) != expected {
		return nil, errors.Wrapf(ErrInvalidOverflowAddressLength, "stack depth %d requires %d addresses, got %d",
			len(stack), expected, len(overflowAddrs))
	}

	size := len(stack)
	if size < StackTopSize {
		size = StackTopSize
	}
	padded := make([]felt.Felt, size)
	copy(padded, stack)

	addrs := make([]felt.Felt, len(overflowAddrs))
	copy(addrs, overflowAddrs)

	return &StackOutputs{
		stack:         padded,
		overflowAddrs: addrs,
	}, nil
}

// overflowAddrsLen returns the number of overflow table addresses expected for
// a stack of the given depth: one per element beyond the register window plus
// the address of the table's first row.
func overflowAddrsLen(depth int) int {
	if depth > StackTopSize {
		return depth - StackTopSize + 1
	}
	return 0
}

// Stack returns a copy of the stack, top first.
func (s *StackOutputs) Stack() []felt.Felt {
	stack := make([]felt.Felt, len(s.stack))
	copy(stack, s.stack)
	return stack
}

// StackTruncated returns at most the n topmost elements.
func (s *StackOutputs) StackTruncated(n int) []felt.Felt {
	if n > len(s.stack) {
		n = len(s.stack)
	}
	stack := make([]felt.Felt, n)
	copy(stack, s.stack[:n])
	return stack
}

func (s *StackOutputs) OverflowAddrs() []felt.Felt {
	addrs := make([]felt.Felt, len(s.overflowAddrs))
	copy(addrs, s.overflowAddrs)
	return addrs
}

func (s *StackOutputs) HasOverflow() bool {
	return len(s.overflowAddrs) != 0
}

// GetStackWord returns the word whose elements occupy positions idx..idx+3.
// A word is pushed element 3 first, so its elements appear on the stack in
// reverse order.
func (s *StackOutputs) GetStackWord(idx int) (felt.Word, bool) {
	if idx < 0 || idx+felt.WordSize > len(s.stack) {
		return felt.EmptyWord, false
	}
	var w felt.Word
	for i := 0; i < felt.WordSize; i++ {
		w[felt.WordSize-1-i] = s.stack[idx+i]
	}
	return w, true
}

type stackOutputsJSON struct {
	Stack         []felt.Felt `json:"stack"`
	OverflowAddrs []felt.Felt `json:"overflow_addrs"`
}

func (s *StackOutputs) MarshalJSON() ([]byte, error) {
	return json.Marshal(stackOutputsJSON{
		Stack:         s.stack,
		OverflowAddrs: s.overflowAddrs,
	})
}

func (s *StackOutputs) UnmarshalJSON(data []byte) error {
	var raw stackOutputsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewStackOutputs(raw.Stack, raw.OverflowAddrs)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
