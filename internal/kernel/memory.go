package kernel

// Account data as laid out by the kernel, in words relative to the start of
// the account data section. The final account stub returned through the advice
// map uses the same layout.
const (
	AcctDataMemSize = 4

	AcctIDAndNonceOffset  = 0
	AcctVaultRootOffset   = 1
	AcctStorageRootOffset = 2
	AcctCodeRootOffset    = 3
)

// Element positions inside the id-and-nonce word.
const (
	AcctIDIdx    = 0
	AcctNonceIdx = 3
)
