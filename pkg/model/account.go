package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/hasher"
	"github.com/pkg/errors"
)

// AccountType is encoded in the two most significant bits of an account id.
type AccountType uint8

const (
	RegularAccountImmutableCode AccountType = iota
	RegularAccountUpdatableCode
	FungibleFaucet
	NonFungibleFaucet
)

const (
	accountTypeShift = 62
	onChainBit       = 61
)

func (t AccountType) String() string {
	switch t {
	case RegularAccountImmutableCode:
		return "regular-immutable"
	case RegularAccountUpdatableCode:
		return "regular-updatable"
	case FungibleFaucet:
		return "fungible-faucet"
	case NonFungibleFaucet:
		return "non-fungible-faucet"
	default:
		return "unknown"
	}
}

// AccountID names an account. It occupies exactly one stack element.
type AccountID felt.Felt

// AccountIDFromUint64 fails if v is not a canonical field element.
func AccountIDFromUint64(v uint64) (AccountID, error) {
	f, err := felt.FromCanonical(v)
	if err != nil {
		return 0, errors.Wrap(err, "account id")
	}
	return AccountID(f), nil
}

func (id AccountID) Felt() felt.Felt {
	return felt.Felt(id)
}

func (id AccountID) Type() AccountType {
	return AccountType(uint64(id) >> accountTypeShift)
}

func (id AccountID) IsFaucet() bool {
	t := id.Type()
	return t == FungibleFaucet || t == NonFungibleFaucet
}

func (id AccountID) IsOnChain() bool {
	return uint64(id)>>onChainBit&1 == 1
}

func (id AccountID) String() string {
	return fmt.Sprintf("0x%016x", uint64(id))
}

func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *AccountID) UnmarshalText(input []byte) error {
	s := strings.TrimPrefix(string(input), "0x")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return errors.Wrapf(err, "parse account id %q", input)
	}
	parsed, err := AccountIDFromUint64(v)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// AccountStubWords is the number of words describing an account stub.
const AccountStubWords = 4

// AccountStub is the compact form of an account state: its id and nonce plus
// the roots of its vault, storage and code.
type AccountStub struct {
	ID          AccountID   `json:"id"`
	Nonce       felt.Felt   `json:"nonce"`
	VaultRoot   felt.Digest `json:"vault_root"`
	StorageRoot felt.Digest `json:"storage_root"`
	CodeRoot    felt.Digest `json:"code_root"`
}

// Words lays the stub out the way the kernel stores account data:
// [id, 0, 0, nonce], vault root, storage root, code root.
func (s *AccountStub) Words() []felt.Word {
	return []felt.Word{
		{s.ID.Felt(), felt.Zero, felt.Zero, s.Nonce},
		s.VaultRoot.Word(),
		s.StorageRoot.Word(),
		s.CodeRoot.Word(),
	}
}

// Hash is the account state commitment.
func (s *AccountStub) Hash() felt.Digest {
	return hasher.HashWords(s.Words()...)
}
