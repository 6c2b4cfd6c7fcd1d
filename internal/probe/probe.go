//go:build linux

// Package probe is the parent-side resource accountant. It waits on a
// sandboxed child with wait4 and turns the kernel's rusage accounting into
// the ground truth a judge classifies against: elapsed CPU time, peak
// resident memory, and exit status.
package probe

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/kanaricc/tank/internal/verdict"
)

// Probe watches exactly one PID. It is single-shot: Watch blocks until the
// child is reaped and must not be called twice.
type Probe struct {
	pid int
}

// New attaches a probe to an already-started child PID.
func New(pid int) *Probe {
	return &Probe{pid: pid}
}

// Watch blocks until the watched process exits, then returns the resource
// accounting the kernel collected for it. This is the only place CPU time
// and peak memory are measured — classification never polls or samples.
func (p *Probe) Watch() (verdict.ProbeResult, error) {
	var status unix.WaitStatus
	var usage unix.Rusage

	_, err := unix.Wait4(p.pid, &status, 0, &usage)
	if err != nil {
		return verdict.ProbeResult{}, fmt.Errorf("probe: wait4(%d): %w", p.pid, err)
	}

	timeMs := uint64(usage.Utime.Sec)*1000 + uint64(usage.Utime.Usec)/1000 +
		uint64(usage.Stime.Sec)*1000 + uint64(usage.Stime.Usec)/1000

	return verdict.ProbeResult{
		TimeMs:       timeMs,
		PeakMemoryKB: uint64(usage.Maxrss),
		ExitStatus:   int(status),
	}, nil
}
