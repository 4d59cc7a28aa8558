package executor

import (
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/vm"
)

// TransactionContext is the chain state a transaction executes against.
type TransactionContext struct {
	AccountID            model.AccountID
	InitialAccountHash   felt.Digest
	InputNotesCommitment felt.Digest
	BlockHash            felt.Digest
	Advice               *vm.AdviceInputs
}

func (c *TransactionContext) adviceInputs() *vm.AdviceInputs {
	if c.Advice == nil {
		return &vm.AdviceInputs{Map: vm.NewAdviceMap()}
	}
	return c.Advice
}
