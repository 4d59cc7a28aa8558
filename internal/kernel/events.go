package kernel

import "fmt"

// Events and traces emitted by the kernel share the 0x2_xxxx id space.
const eventIDPrefix = 2

// TransactionEvent is emitted by the kernel when the host must update state it
// mirrors, such as the account vault.
type TransactionEvent uint32

const (
	AddAssetToAccountVault      TransactionEvent = 0x2_0000
	RemoveAssetFromAccountVault TransactionEvent = 0x2_0001
)

func (e TransactionEvent) String() string {
	switch e {
	case AddAssetToAccountVault:
		return "AddAssetToAccountVault"
	case RemoveAssetFromAccountVault:
		return "RemoveAssetFromAccountVault"
	default:
		return fmt.Sprintf("TransactionEvent(%#x)", uint32(e))
	}
}

type NotTransactionEventError struct {
	Value uint32
}

func (e *NotTransactionEventError) Error() string {
	return fmt.Sprintf("event %#x is not a transaction kernel event", e.Value)
}

type InvalidTransactionEventError struct {
	Value uint32
}

func (e *InvalidTransactionEventError) Error() string {
	return fmt.Sprintf("event %#x is not a valid transaction kernel event", e.Value)
}

// ParseTransactionEvent maps an event id to a TransactionEvent. Ids outside
// the kernel's space yield NotTransactionEventError so the caller can hand
// them to another handler.
func ParseTransactionEvent(value uint32) (TransactionEvent, error) {
	if value>>16 != eventIDPrefix {
		return 0, &NotTransactionEventError{Value: value}
	}

	switch e := TransactionEvent(value); e {
	case AddAssetToAccountVault, RemoveAssetFromAccountVault:
		return e, nil
	default:
		return 0, &InvalidTransactionEventError{Value: value}
	}
}

// TransactionTrace marks the boundaries of the kernel's execution phases.
type TransactionTrace uint32

const (
	PrologueStart TransactionTrace = 0x2_0000 + iota
	PrologueEnd
	NotesProcessingStart
	NotesProcessingEnd
	NoteExecutionStart
	NoteExecutionEnd
	TxScriptProcessingStart
	TxScriptProcessingEnd
	EpilogueStart
	EpilogueEnd
)

var traceNames = map[TransactionTrace]string{
	PrologueStart:           "PrologueStart",
	PrologueEnd:             "PrologueEnd",
	NotesProcessingStart:    "NotesProcessingStart",
	NotesProcessingEnd:      "NotesProcessingEnd",
	NoteExecutionStart:      "NoteExecutionStart",
	NoteExecutionEnd:        "NoteExecutionEnd",
	TxScriptProcessingStart: "TxScriptProcessingStart",
	TxScriptProcessingEnd:   "TxScriptProcessingEnd",
	EpilogueStart:           "EpilogueStart",
	EpilogueEnd:             "EpilogueEnd",
}

func (t TransactionTrace) String() string {
	if name, ok := traceNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionTrace(%#x)", uint32(t))
}

type NotTransactionTraceError struct {
	Value uint32
}

func (e *NotTransactionTraceError) Error() string {
	return fmt.Sprintf("trace %#x is not a transaction kernel trace", e.Value)
}

type InvalidTransactionTraceError struct {
	Value uint32
}

func (e *InvalidTransactionTraceError) Error() string {
	return fmt.Sprintf("trace %#x is not a valid transaction kernel trace", e.Value)
}

func ParseTransactionTrace(value uint32) (TransactionTrace, error) {
	if value>>16 != eventIDPrefix {
		return 0, &NotTransactionTraceError{Value: value}
	}

	t := TransactionTrace(value)
	if _, ok := traceNames[t]; !ok {
		return 0, &InvalidTransactionTraceError{Value: value}
	}
	return t, nil
}
