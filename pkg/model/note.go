package model

import (
	"encoding/json"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/hasher"
	"github.com/samber/lo"
)

// MaxOutputNotesPerTx bounds the number of notes a transaction may create.
const MaxOutputNotesPerTx = 4096

// NoteID is the commitment to a note's recipient and assets.
type NoteID = felt.Digest

type NoteMetadata struct {
	Sender AccountID `json:"sender"`
	Tag    felt.Felt `json:"tag"`
	Aux    felt.Felt `json:"aux"`
}

// Word encodes the metadata as [tag, sender, aux, 0].
func (m NoteMetadata) Word() felt.Word {
	return felt.Word{m.Tag, m.Sender.Felt(), m.Aux, felt.Zero}
}

// Note carries the full details of a note. Each asset is a single word.
type Note struct {
	Recipient felt.Digest  `json:"recipient"`
	Assets    []felt.Word  `json:"assets"`
	Metadata  NoteMetadata `json:"metadata"`
}

func (n *Note) AssetsCommitment() felt.Digest {
	return hasher.HashWords(n.Assets...)
}

func (n *Note) ID() NoteID {
	return hasher.Merge(n.Recipient, n.AssetsCommitment())
}

// OutputNote is a note created by a transaction. Details is nil for private
// notes, where only the id and metadata are revealed.
type OutputNote struct {
	ID       NoteID       `json:"id"`
	Metadata NoteMetadata `json:"metadata"`
	Details  *Note        `json:"details,omitempty" rlp:"nil"`
}

func NewPublicOutputNote(n *Note) OutputNote {
	return OutputNote{
		ID:       n.ID(),
		Metadata: n.Metadata,
		Details:  n,
	}
}

func NewPrivateOutputNote(id NoteID, metadata NoteMetadata) OutputNote {
	return OutputNote{
		ID:       id,
		Metadata: metadata,
	}
}

func (n OutputNote) IsPublic() bool {
	return n.Details != nil
}

// OutputNotes is a validated collection of output notes.
type OutputNotes struct {
	notes      []OutputNote
	commitment felt.Digest
}

// NewOutputNotes validates the notes and computes their commitment. It fails
// on too many notes, duplicated ids and public notes whose details do not
// match their id.
func NewOutputNotes(notes []OutputNote) (*OutputNotes, error) {
	if len(notes) > MaxOutputNotesPerTx {
		return nil, &TooManyOutputNotesError{Max: MaxOutputNotesPerTx, Actual: len(notes)}
	}

	for _, n := range notes {
		if n.Details == nil {
			continue
		}
		if computed := n.Details.ID(); computed != n.ID {
			return nil, &InvalidOutputNoteError{ID: n.ID, Computed: computed}
		}
	}

	if dups := lo.FindDuplicatesBy(notes, func(n OutputNote) NoteID { return n.ID }); len(dups) != 0 {
		return nil, &DuplicateOutputNoteError{ID: dups[0].ID}
	}

	owned := make([]OutputNote, len(notes))
	copy(owned, notes)

	return &OutputNotes{
		notes:      owned,
		commitment: outputNotesCommitment(owned),
	}, nil
}

// outputNotesCommitment hashes [id, metadata] of every note in order. An empty
// collection commits to the empty digest.
func outputNotesCommitment(notes []OutputNote) felt.Digest {
	if len(notes) == 0 {
		return felt.EmptyDigest
	}

	elements := make([]felt.Felt, 0, len(notes)*2*felt.WordSize)
	for _, n := range notes {
		elements = append(elements, n.ID.Elements()...)
		elements = append(elements, n.Metadata.Word().Elements()...)
	}
	return hasher.HashElements(elements)
}

func (o *OutputNotes) Commitment() felt.Digest {
	return o.commitment
}

func (o *OutputNotes) Len() int {
	return len(o.notes)
}

func (o *OutputNotes) IsEmpty() bool {
	return len(o.notes) == 0
}

func (o *OutputNotes) Get(i int) OutputNote {
	return o.notes[i]
}

// Notes returns a copy of the notes in creation order.
func (o *OutputNotes) Notes() []OutputNote {
	notes := make([]OutputNote, len(o.notes))
	copy(notes, o.notes)
	return notes
}

func (o *OutputNotes) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.notes)
}

func (o *OutputNotes) UnmarshalJSON(data []byte) error {
	var notes []OutputNote
	if err := json.Unmarshal(data, &notes); err != nil {
		return err
	}
	parsed, err := NewOutputNotes(notes)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}
