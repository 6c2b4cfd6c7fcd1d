//go:build linux

package cell

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// asm is a tiny two-pass classic-BPF assembler. Hand-encoding jump
// distances for an allow-list with argument comparisons gets error-prone
// fast (a deny-list filter can get away without one since it only ever
// jumps to a single trailing deny instruction); this gives every jump a
// named target instead of a manually counted offset.
type asm struct {
	ops    []asmOp
	labels map[string]int
}

type asmOp struct {
	filter   unix.SockFilter
	jt, jf   string // label names; empty means "fall through" (distance 0)
	isJump   bool
	labelPos string // if set, this op's resolved index is recorded under this label
}

func newAsm() *asm {
	return &asm{labels: make(map[string]int)}
}

func (a *asm) ld(offset uint32) {
	a.ops = append(a.ops, asmOp{filter: unix.SockFilter{
		Code: unix.BPF_LD | unix.BPF_W | unix.BPF_ABS,
		K:    offset,
	}})
}

// jeq compares the loaded word against k: jumps to jt on equal, jf on
// not-equal. Either label may be "" to mean "fall through to the next op".
func (a *asm) jeq(k uint32, jt, jf string) {
	a.ops = append(a.ops, asmOp{
		filter: unix.SockFilter{Code: unix.BPF_JMP | unix.BPF_JEQ | unix.BPF_K, K: k},
		jt:     jt,
		jf:     jf,
		isJump: true,
	})
}

func (a *asm) ret(k uint32, label string) {
	a.ops = append(a.ops, asmOp{
		filter:   unix.SockFilter{Code: unix.BPF_RET | unix.BPF_K, K: k},
		labelPos: label,
	})
}

// mark attaches a label to the next instruction that will be appended.
func (a *asm) mark(label string) {
	a.labels[label] = len(a.ops)
}

// assemble resolves every label reference into a concrete forward jump
// distance and returns the finished program.
func (a *asm) assemble() ([]unix.SockFilter, error) {
	for i, op := range a.ops {
		if op.labelPos != "" {
			a.labels[op.labelPos] = i
		}
	}

	prog := make([]unix.SockFilter, len(a.ops))
	for i, op := range a.ops {
		f := op.filter
		if op.isJump {
			jt, err := distance(i, op.jt, a.labels)
			if err != nil {
				return nil, err
			}
			jf, err := distance(i, op.jf, a.labels)
			if err != nil {
				return nil, err
			}
			f.Jt = jt
			f.Jf = jf
		}
		prog[i] = f
	}
	return prog, nil
}

func distance(from int, label string, labels map[string]int) (uint8, error) {
	if label == "" {
		return 0, nil
	}
	to, ok := labels[label]
	if !ok {
		return 0, fmt.Errorf("cell: unknown bpf label %q", label)
	}
	d := to - from - 1
	if d < 0 || d > 255 {
		return 0, fmt.Errorf("cell: bpf jump to %q out of range (classic BPF jt/jf is 8-bit, got %d)", label, d)
	}
	return uint8(d), nil
}
