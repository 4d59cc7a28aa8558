package kernel

import (
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
)

// Word positions of the kernel's outputs on the final stack. They must match
// the kernel epilogue.
const (
	OutputNotesCommitmentWordIdx = 0
	FinalAccountHashWordIdx      = 1
)

// Element offsets of the stack words that must be left zeroed.
const (
	thirdWordOffset  = 8
	fourthWordOffset = 12
)

// ParseFinalAccountStub decodes the account data words the kernel places in
// the advice map under the final account hash.
func ParseFinalAccountStub(words []felt.Word) (*model.AccountStub, error) {
	if len(words) != AcctDataMemSize {
		return nil, &model.StubDataIncorrectLengthError{Actual: len(words), Expected: AcctDataMemSize}
	}

	idAndNonce := words[AcctIDAndNonceOffset]
	return &model.AccountStub{
		ID:          model.AccountID(idAndNonce[AcctIDIdx]),
		Nonce:       idAndNonce[AcctNonceIdx],
		VaultRoot:   felt.Digest(words[AcctVaultRootOffset]),
		StorageRoot: felt.Digest(words[AcctStorageRootOffset]),
		CodeRoot:    felt.Digest(words[AcctCodeRootOffset]),
	}, nil
}
