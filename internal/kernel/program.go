package kernel

import (
	"fmt"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/vm"
)

// ProgramProvider supplies the compiled transaction kernel. Assembling the
// kernel from source happens elsewhere; the host only needs the program hash
// and the kernel's procedure hashes.
type ProgramProvider interface {
	// KernelSource returns the source of the kernel's system procedures.
	KernelSource() string

	// ProgramInfo returns the kernel's main program and the kernel it was
	// compiled against.
	ProgramInfo() *vm.ProgramInfo
}

type StaticProvider struct {
	source string
	info   *vm.ProgramInfo
}

var _ ProgramProvider = (*StaticProvider)(nil)

func NewStaticProvider(source string, info *vm.ProgramInfo) *StaticProvider {
	return &StaticProvider{
		source: source,
		info:   info,
	}
}

// NewProviderFromHex builds a provider from hex-encoded digests, as they
// appear in the configuration file.
func NewProviderFromHex(source, programHash string, procHashes []string) (*StaticProvider, error) {
	hash, err := felt.DigestFromHex(programHash)
	if err != nil {
		return nil, fmt.Errorf("parse program hash: %w", err)
	}

	procs := make([]felt.Digest, 0, len(procHashes))
	for i, h := range procHashes {
		d, err := felt.DigestFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("parse kernel procedure %d: %w", i, err)
		}
		procs = append(procs, d)
	}

	k, err := vm.NewKernel(procs)
	if err != nil {
		return nil, fmt.Errorf("build kernel: %w", err)
	}

	return NewStaticProvider(source, vm.NewProgramInfo(hash, k)), nil
}

func (p *StaticProvider) KernelSource() string {
	return p.source
}

func (p *StaticProvider) ProgramInfo() *vm.ProgramInfo {
	return p.info
}
