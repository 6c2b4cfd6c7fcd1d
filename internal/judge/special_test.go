package judge

import (
	"testing"

	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/verdict"
)

func TestSpecialJudgeAccept(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	echo24 := writeScript(t, dir, "echo24", "echo 24\n")
	checker := writeScript(t, dir, "checker-same", "echo same\n")

	j := SpecialJudge{
		CellPath:    cell,
		Program:     verdict.CompiledProgram{Path: echo24},
		Limit:       verdict.LimitConfig{TimeLimitMs: 5000, MemoryLimitMB: 256},
		CheckerPath: checker,
	}
	res, err := j.Judge()
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if res.Status != verdict.Accept {
		t.Errorf("Status = %v, want Accept", res.Status)
	}
}

func TestSpecialJudgeDifferent(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	echo24 := writeScript(t, dir, "echo24", "echo 24\n")
	checker := writeScript(t, dir, "checker-different", "echo different\n")

	j := SpecialJudge{
		CellPath:    cell,
		Program:     verdict.CompiledProgram{Path: echo24},
		Limit:       verdict.LimitConfig{TimeLimitMs: 5000, MemoryLimitMB: 256},
		CheckerPath: checker,
	}
	res, err := j.Judge()
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if res.Status != verdict.WrongAnswer {
		t.Errorf("Status = %v, want WrongAnswer", res.Status)
	}
}

func TestSpecialJudgeUnknownTokenIsFatal(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	echo24 := writeScript(t, dir, "echo24", "echo 24\n")
	checker := writeScript(t, dir, "checker-bogus", "echo bogus\n")

	j := SpecialJudge{
		CellPath:    cell,
		Program:     verdict.CompiledProgram{Path: echo24},
		Limit:       verdict.LimitConfig{TimeLimitMs: 5000, MemoryLimitMB: 256},
		CheckerPath: checker,
	}
	_, err := j.Judge()
	if err == nil {
		t.Fatal("Judge should have failed on an unknown checker token")
	}
	if !judgeerr.Is(err, judgeerr.UserProgram) {
		t.Errorf("error = %v, want judgeerr.UserProgram", err)
	}
}

func TestSpecialJudgeSkipsCheckerWhenAlreadyClassified(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	fail := writeScript(t, dir, "fail", "exit 3\n")
	// A checker that would fail the test if it were invoked.
	checker := writeScript(t, dir, "checker-should-not-run", "echo bogus\n")

	j := SpecialJudge{
		CellPath:    cell,
		Program:     verdict.CompiledProgram{Path: fail},
		Limit:       verdict.LimitConfig{TimeLimitMs: 5000, MemoryLimitMB: 256},
		CheckerPath: checker,
	}
	res, err := j.Judge()
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if res.Status != verdict.RuntimeError {
		t.Errorf("Status = %v, want RuntimeError (classification should short-circuit the checker)", res.Status)
	}
}
