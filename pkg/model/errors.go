package model

import (
	"fmt"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/pkg/errors"
)

var (
	// ErrOutputStackInvalid is returned when the kernel left the output stack
	// in an unexpected state. It is always wrapped with the failed check.
	ErrOutputStackInvalid = errors.New("invalid output stack")

	// ErrFinalAccountDataNotFound is returned when the advice map has no entry
	// under the final account hash asserted on the stack.
	ErrFinalAccountDataNotFound = errors.New("final account data not found in advice map")
)

// FinalAccountStubDataInvalidError reports advice data that does not decode
// into an account stub.
type FinalAccountStubDataInvalidError struct {
	Cause error
}

func (e *FinalAccountStubDataInvalidError) Error() string {
	return fmt.Sprintf("final account stub data invalid: %v", e.Cause)
}

func (e *FinalAccountStubDataInvalidError) Unwrap() error {
	return e.Cause
}

// OutputNotesCommitmentInconsistentError reports a mismatch between the notes
// commitment asserted by the kernel (Expected) and the one computed from the
// notes supplied by the host (Actual).
type OutputNotesCommitmentInconsistentError struct {
	Expected felt.Digest
	Actual   felt.Digest
}

func (e *OutputNotesCommitmentInconsistentError) Error() string {
	return fmt.Sprintf("output notes commitment inconsistent: expected %s, actual %s", e.Expected, e.Actual)
}

type DuplicateOutputNoteError struct {
	ID NoteID
}

func (e *DuplicateOutputNoteError) Error() string {
	return fmt.Sprintf("duplicate output note %s", e.ID)
}

type TooManyOutputNotesError struct {
	Max    int
	Actual int
}

func (e *TooManyOutputNotesError) Error() string {
	return fmt.Sprintf("too many output notes: max %d, actual %d", e.Max, e.Actual)
}

// InvalidOutputNoteError reports a public note whose details hash to an id
// other than the one it carries.
type InvalidOutputNoteError struct {
	ID       NoteID
	Computed NoteID
}

func (e *InvalidOutputNoteError) Error() string {
	return fmt.Sprintf("output note %s has details hashing to %s", e.ID, e.Computed)
}

type StubDataIncorrectLengthError struct {
	Actual   int
	Expected int
}

func (e *StubDataIncorrectLengthError) Error() string {
	return fmt.Sprintf("account stub data has %d words, expected %d", e.Actual, e.Expected)
}
