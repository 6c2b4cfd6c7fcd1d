//go:build linux

package cell

import "testing"

func TestAsmFallthroughIsZeroDistance(t *testing.T) {
	a := newAsm()
	a.ld(0)
	a.jeq(42, "allow", "")
	a.ret(1, "allow")

	prog, err := a.assemble()
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(prog) != 3 {
		t.Fatalf("len(prog) = %d, want 3", len(prog))
	}
	// jeq is at index 1, allow (ret) at index 2: jt distance = 2-1-1 = 0.
	if prog[1].Jt != 0 {
		t.Errorf("Jt = %d, want 0", prog[1].Jt)
	}
	if prog[1].Jf != 0 {
		t.Errorf("Jf = %d, want 0 (no target given)", prog[1].Jf)
	}
}

func TestAsmSkipsOverBlock(t *testing.T) {
	a := newAsm()
	a.ld(0)               // 0
	a.jeq(1, "", "after") // 1: fallthrough into block, else skip to "after"
	a.ld(4)               // 2: block body
	a.jeq(2, "allow", "after") // 3
	a.ret(0, "after")     // 4
	a.ret(1, "allow")     // 5

	prog, err := a.assemble()
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	// index 1's jf must land exactly on index 4 ("after"): distance = 4-1-1=2.
	if prog[1].Jf != 2 {
		t.Errorf("block-skip Jf = %d, want 2", prog[1].Jf)
	}
	// index 3's jt targets "allow" at index 5: distance = 5-3-1=1.
	if prog[3].Jt != 1 {
		t.Errorf("allow Jt = %d, want 1", prog[3].Jt)
	}
}

func TestAsmUnknownLabelErrors(t *testing.T) {
	a := newAsm()
	a.ld(0)
	a.jeq(1, "nowhere", "")
	if _, err := a.assemble(); err == nil {
		t.Fatal("assemble with dangling label should have failed")
	}
}

func TestAsmBackwardJumpRejected(t *testing.T) {
	a := newAsm()
	a.ret(0, "top")
	a.jeq(1, "top", "") // jt targets an earlier instruction: not representable.
	if _, err := a.assemble(); err == nil {
		t.Fatal("assemble with a backward jump should have failed")
	}
}
