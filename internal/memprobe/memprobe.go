// Package memprobe implements the process-memory probe collaborator of
// §6: it reports the current process's resident set size so the result
// summary can carry an optional peak-memory figure (SPEC_FULL's
// supplemented progress/timing feature).
package memprobe

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/shirou/gopsutil/v3/process"
)

// Probe samples the current process's RSS in bytes.
type Probe struct {
	proc *process.Process
	peak uint64
}

// NewProbe attaches to the current process.
func NewProbe() (*Probe, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, eris.Wrap(err, "memprobe: attach to process")
	}
	return &Probe{proc: p}, nil
}

// Sample reads the current RSS and folds it into the running peak. It is
// safe to call repeatedly over the lifetime of a mining run.
func (p *Probe) Sample() (uint64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, eris.Wrap(err, "memprobe: read memory info")
	}
	if info.RSS > p.peak {
		p.peak = info.RSS
	}
	return info.RSS, nil
}

// Peak returns the highest RSS observed across every Sample call so far.
func (p *Probe) Peak() uint64 { return p.peak }
