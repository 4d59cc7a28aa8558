package vm

import (
	"context"

	"github.com/meshplus/txkernel/pkg/model"
	"github.com/pkg/errors"
)

//go:generate mockgen -destination mock_vm/mock_vm.go -package mock_vm -source vm.go

// ErrTransient marks execution failures that say nothing about the program,
// such as a prover backend being unavailable. Only these are worth retrying;
// any other failure reproduces on re-execution.
var ErrTransient = errors.New("transient vm failure")

// ExecutionResult is what a program leaves behind after a successful run.
// Events and Traces hold the ids the program emitted, in emission order.
type ExecutionResult struct {
	Stack       *StackOutputs
	AdviceMap   *AdviceMap
	OutputNotes []model.OutputNote
	Events      []uint32
	Traces      []uint32
	Cycles      uint64
}

// Executor is the basic interface for an implementation of the VM.
type Executor interface {
	// Execute runs the program with the given stack and advice inputs and
	// returns its final stack, the advice map it populated and the notes it
	// created.
	Execute(ctx context.Context, program *ProgramInfo, stack *StackInputs, advice *AdviceInputs) (*ExecutionResult, error)
}
