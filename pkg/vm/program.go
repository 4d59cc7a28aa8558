package vm

import (
	"math"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/hasher"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// MaxKernelProcedures is the largest kernel whose procedure count still fits
// the 16-bit slot of the kernel's stack inputs.
const MaxKernelProcedures = math.MaxUint16

var (
	ErrTooManyKernelProcedures  = errors.New("too many kernel procedures")
	ErrDuplicateKernelProcedure = errors.New("duplicate kernel procedure")
)

// Kernel is the set of procedures a program may invoke through syscalls.
type Kernel struct {
	procHashes []felt.Digest
	hash       felt.Digest
}

func NewKernel(procHashes []felt.Digest) (*Kernel, error) {
	if len(procHashes) > MaxKernelProcedures {
		return nil, errors.Wrapf(ErrTooManyKernelProcedures, "got %d, max %d", len(procHashes), MaxKernelProcedures)
	}
	if dups := lo.FindDuplicates(procHashes); len(dups) != 0 {
		return nil, errors.Wrapf(ErrDuplicateKernelProcedure, "%s", dups[0])
	}

	owned := make([]felt.Digest, len(procHashes))
	copy(owned, procHashes)

	k := &Kernel{procHashes: owned}
	if len(owned) != 0 {
		elements := make([]felt.Felt, 0, len(owned)*felt.WordSize)
		for _, h := range owned {
			elements = append(elements, h.Elements()...)
		}
		k.hash = hasher.HashElements(elements)
	}
	return k, nil
}

// Hash commits to the ordered procedure hashes. An empty kernel hashes to the
// empty digest.
func (k *Kernel) Hash() felt.Digest {
	return k.hash
}

// ProcCount fits in 16 bits by construction.
func (k *Kernel) ProcCount() uint16 {
	return uint16(len(k.procHashes))
}

func (k *Kernel) ProcHashes() []felt.Digest {
	hashes := make([]felt.Digest, len(k.procHashes))
	copy(hashes, k.procHashes)
	return hashes
}

// ProgramInfo identifies a compiled program and the kernel it was compiled
// against.
type ProgramInfo struct {
	programHash felt.Digest
	kernel      *Kernel
}

func NewProgramInfo(programHash felt.Digest, kernel *Kernel) *ProgramInfo {
	return &ProgramInfo{
		programHash: programHash,
		kernel:      kernel,
	}
}

func (p *ProgramInfo) ProgramHash() felt.Digest {
	return p.programHash
}

func (p *ProgramInfo) Kernel() *Kernel {
	return p.kernel
}
