package model

import (
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/hasher"
)

// TransactionOutputs is the validated result of one kernel execution.
// FinalAccountHash is the commitment the kernel asserted on its output stack;
// Account is the stub stored under it in the advice map.
type TransactionOutputs struct {
	FinalAccountHash felt.Digest  `json:"final_account_hash"`
	Account          AccountStub  `json:"account"`
	OutputNotes      *OutputNotes `json:"output_notes"`
}

// TransactionID identifies an executed transaction.
type TransactionID = felt.Digest

// NewTransactionID commits to the state transition of a transaction: the
// account hash before and after, and the commitments to consumed and created
// notes.
func NewTransactionID(initAccountHash, finalAccountHash, inputNotesHash, outputNotesHash felt.Digest) TransactionID {
	return hasher.HashWords(
		initAccountHash.Word(),
		finalAccountHash.Word(),
		inputNotesHash.Word(),
		outputNotesHash.Word(),
	)
}

// ExecutedTransaction is what the host keeps after a successful execution.
type ExecutedTransaction struct {
	ID                   TransactionID       `json:"id"`
	AccountID            AccountID           `json:"account_id"`
	InitialAccountHash   felt.Digest         `json:"initial_account_hash"`
	InputNotesCommitment felt.Digest         `json:"input_notes_commitment"`
	BlockHash            felt.Digest         `json:"block_hash"`
	ProgramHash          felt.Digest         `json:"program_hash"`
	Outputs              *TransactionOutputs `json:"outputs"`
}

// FinalAccountHash is the kernel's commitment to the account state after the
// transaction.
func (t *ExecutedTransaction) FinalAccountHash() felt.Digest {
	return t.Outputs.FinalAccountHash
}
