// Package kernel implements the host side of the transaction kernel's
// interface: the layout of its stack inputs, and the parsing and validation
// of the stack outputs and advice data it leaves behind.
//
// Every function here is pure. Layout changes must be made together with the
// kernel program's prologue and epilogue.
package kernel

import (
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/pkg/errors"
)

// InputStackSize is the number of elements the kernel prologue reads.
const InputStackSize = 18

// BuildInputStack returns the public inputs of the transaction kernel. After
// pushing, the stack reads top first:
//
//	[BLOCK_HASH, acct_id, INITIAL_ACCOUNT_HASH, INPUT_NOTES_COMMITMENT, kernel_procs_len, KERNEL_HASH]
//
// initAcctHash is the empty digest for an account that does not exist yet.
func BuildInputStack(
	acctID model.AccountID,
	initAcctHash felt.Digest,
	inputNotesHash felt.Digest,
	blockHash felt.Digest,
	kernelProcs uint16,
	kernelHash felt.Digest,
) *vm.StackInputs {
	inputs := make([]felt.Felt, 0, InputStackSize)
	inputs = append(inputs, kernelHash.Elements()...)
	inputs = append(inputs, felt.FromUint16(kernelProcs))
	inputs = append(inputs, inputNotesHash.Elements()...)
	inputs = append(inputs, initAcctHash.Elements()...)
	inputs = append(inputs, acctID.Felt())
	inputs = append(inputs, blockHash.Elements()...)
	return vm.NewStackInputs(inputs)
}

// BuildInputStackForProgram is BuildInputStack with the kernel taken from the
// program being executed.
func BuildInputStackForProgram(
	program *vm.ProgramInfo,
	acctID model.AccountID,
	initAcctHash felt.Digest,
	inputNotesHash felt.Digest,
	blockHash felt.Digest,
) *vm.StackInputs {
	k := program.Kernel()
	return BuildInputStack(acctID, initAcctHash, inputNotesHash, blockHash, k.ProcCount(), k.Hash())
}

// BuildOutputStack returns the stack the kernel epilogue is expected to leave:
// the output notes commitment on top of the final account hash.
func BuildOutputStack(finalAcctHash, outputNotesHash felt.Digest) *vm.StackOutputs {
	outputs := make([]felt.Felt, 0, 2*felt.WordSize)
	outputs = append(outputs, finalAcctHash.Elements()...)
	outputs = append(outputs, outputNotesHash.Elements()...)
	for i, j := 0, len(outputs)-1; i < j; i, j = i+1, j-1 {
		outputs[i], outputs[j] = outputs[j], outputs[i]
	}

	stack, err := vm.NewStackOutputs(outputs, nil)
	if err != nil {
		// eight elements never overflow
		panic(err)
	}
	return stack
}

// ParseOutputStack extracts the final account hash and the output notes
// commitment from the kernel's output stack:
//
//	[OUTPUT_NOTES_COMMITMENT, FINAL_ACCOUNT_HASH, 0, 0, 0, 0, 0, 0, 0, 0]
//
// It fails if the third or fourth word is not zero or if the stack has
// overflowed.
func ParseOutputStack(stack *vm.StackOutputs) (finalAcctHash, outputNotesHash felt.Digest, err error) {
	if stack == nil {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid, "no output stack")
	}

	notes, ok := stack.GetStackWord(OutputNotesCommitmentWordIdx * felt.WordSize)
	if !ok {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid, "first word missing")
	}
	account, ok := stack.GetStackWord(FinalAccountHashWordIdx * felt.WordSize)
	if !ok {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid, "second word missing")
	}

	if w, ok := stack.GetStackWord(thirdWordOffset); !ok || !w.IsEmpty() {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid,
			"third word on output stack should consist only of ZEROs")
	}
	if w, ok := stack.GetStackWord(fourthWordOffset); !ok || !w.IsEmpty() {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid,
			"fourth word on output stack should consist only of ZEROs")
	}
	if stack.HasOverflow() {
		return felt.Digest{}, felt.Digest{}, errors.Wrap(model.ErrOutputStackInvalid,
			"output stack should not have overflow addresses")
	}

	return felt.Digest(account), felt.Digest(notes), nil
}

// ResolveFinalAccount decodes the account stub stored in the advice map under
// finalAcctHash. The hash is trusted as given; binding it to the data is the
// proof's job.
func ResolveFinalAccount(finalAcctHash felt.Digest, adviceMap *vm.AdviceMap) (*model.AccountStub, error) {
	data, ok := adviceMap.Get(finalAcctHash)
	if !ok {
		return nil, model.ErrFinalAccountDataNotFound
	}

	words, err := felt.GroupWords(data)
	if err != nil {
		return nil, &model.FinalAccountStubDataInvalidError{Cause: err}
	}

	stub, err := ParseFinalAccountStub(words)
	if err != nil {
		return nil, &model.FinalAccountStubDataInvalidError{Cause: err}
	}
	return stub, nil
}

// FromTransactionParts assembles the outputs of a kernel execution from its
// output stack, the advice map it populated and the notes it created. The
// notes must commit to the value the kernel asserted on the stack. Nothing is
// returned unless every check passes.
func FromTransactionParts(
	stack *vm.StackOutputs,
	adviceMap *vm.AdviceMap,
	outputNotes []model.OutputNote,
) (*model.TransactionOutputs, error) {
	finalAcctHash, outputNotesHash, err := ParseOutputStack(stack)
	if err != nil {
		return nil, err
	}

	account, err := ResolveFinalAccount(finalAcctHash, adviceMap)
	if err != nil {
		return nil, err
	}

	notes, err := model.NewOutputNotes(outputNotes)
	if err != nil {
		return nil, err
	}
	if commitment := notes.Commitment(); commitment != outputNotesHash {
		return nil, &model.OutputNotesCommitmentInconsistentError{
			Expected: outputNotesHash,
			Actual:   commitment,
		}
	}

	return &model.TransactionOutputs{
		FinalAccountHash: finalAcctHash,
		Account:          *account,
		OutputNotes:      notes,
	}, nil
}
