package judge

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/kanaricc/tank/internal/compare"
	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/verdict"
)

// cellArgs builds the common cell invocation: the target path, the -m/-t/-p
// flags, then "--" and the program's own arguments.
func cellArgs(program verdict.CompiledProgram, limit verdict.LimitConfig, profile string) []string {
	args := []string{
		program.Path,
		"-m", strconv.FormatUint(limit.MemoryLimitMB, 10),
		"-t", strconv.FormatUint(limit.TimeLimitMs, 10),
		"-p", profile,
		"--",
	}
	return append(args, program.Args...)
}

// spawnCell starts the cell sandbox launcher for program, wired with piped
// stdin/stdout/stderr. The caller owns the returned pipes and is
// responsible for draining them and attaching a probe to cmd.Process.Pid.
func spawnCell(cellPath string, program verdict.CompiledProgram, limit verdict.LimitConfig, profile string) (cmd *exec.Cmd, stdin io.WriteCloser, stdout, stderr io.ReadCloser, err error) {
	cmd = exec.Command(cellPath, cellArgs(program, limit, profile)...)

	stdin, err = cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, nil, judgeerr.Wrap(judgeerr.IO, "open cell stdin", err)
	}
	stdout, err = cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, nil, judgeerr.Wrap(judgeerr.IO, "open cell stdout", err)
	}
	stderr, err = cmd.StderrPipe()
	if err != nil {
		return nil, nil, nil, nil, judgeerr.Wrap(judgeerr.IO, "open cell stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, nil, nil, judgeerr.Wrap(judgeerr.Environment, "spawn cell", err)
	}
	return cmd, stdin, stdout, stderr, nil
}

// NormalJudge runs a program against one test case and compares its output
// to an expected answer with a chosen comparator.
type NormalJudge struct {
	CellPath   string
	Program    verdict.CompiledProgram
	Input      string
	Answer     string
	Limit      verdict.LimitConfig
	Comparator compare.Mode
}

// Judge spawns cell, feeds Input on stdin, waits for the sandboxed child to
// exit, classifies the result, and — if classification is undecided — runs
// the comparator against the captured stdout.
func (j NormalJudge) Judge() (verdict.JudgeResult, error) {
	cmd, stdin, stdout, stderr, err := spawnCell(j.CellPath, j.Program, j.Limit, "minimum")
	if err != nil {
		return verdict.JudgeResult{}, err
	}
	p := probeFor(cmd)

	if _, err := writeAndClose(stdin, j.Input); err != nil {
		return verdict.JudgeResult{}, err
	}

	probeResult, err := p.Watch()
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "wait for child", err)
	}

	out, errOut, err := drain(stdout, stderr)
	if err != nil {
		return verdict.JudgeResult{}, err
	}

	status := classify(j.Limit, probeResult, errOut)
	if status == verdict.Uncertain {
		status = compareVerdict(j.Comparator, j.Answer, out)
	}

	return verdict.JudgeResult{
		Status:       status,
		TimeMs:       uint64Ptr(probeResult.TimeMs),
		PeakMemoryKB: uint64Ptr(probeResult.PeakMemoryKB),
		Stdin:        stringPtr(j.Input),
		Stdout:       stringPtr(out),
		Stderr:       stringPtr(errOut),
	}, nil
}

// compareVerdict maps a compare.Result to the verdict it stands for.
func compareVerdict(mode compare.Mode, expected, actual string) verdict.Verdict {
	switch mode.Compare(expected, actual) {
	case compare.Same:
		return verdict.Accept
	case compare.PatternDifferent:
		return verdict.PresentationError
	default:
		return verdict.WrongAnswer
	}
}

func uint64Ptr(v uint64) *uint64 { return &v }
func stringPtr(s string) *string { return &s }

// ComparatorFor resolves a verdict.Comparator selection to its compare.Mode,
// the bridge between a problem config's declared mode and the Mode value
// NormalJudge needs.
func ComparatorFor(c verdict.Comparator) (compare.Mode, error) {
	switch c {
	case verdict.CompareFull:
		return compare.Full{}, nil
	case verdict.CompareLine:
		return compare.Line{}, nil
	case verdict.CompareValue:
		return compare.Value{}, nil
	default:
		return nil, fmt.Errorf("judge: unknown comparator %v", c)
	}
}
