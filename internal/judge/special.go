package judge

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/verdict"
)

// SpecialJudge is like NormalJudge but delegates the accept/reject decision
// to a checker binary invoked on saved input/output files, rather than a
// comparator.
type SpecialJudge struct {
	CellPath    string
	Program     verdict.CompiledProgram
	Input       string
	Limit       verdict.LimitConfig
	CheckerPath string
}

// Judge runs the program exactly like NormalJudge, then — only if
// classification left the verdict Uncertain — writes the input and
// captured output to a scoped temp directory and asks the checker to judge
// them. The checker runs outside the sandbox; it is trusted problem
// material.
func (j SpecialJudge) Judge() (verdict.JudgeResult, error) {
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
		status, err = j.runChecker(j.Input, out)
		if err != nil {
			return verdict.JudgeResult{}, err
		}
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

// runChecker allocates a scoped temp directory, writes the input and output
// files, runs the checker against them, and parses its verdict token.
func (j SpecialJudge) runChecker(input, output string) (verdict.Verdict, error) {
	dir, err := os.MkdirTemp("", "tank-special-"+uuid.NewString())
	if err != nil {
		return verdict.Uncertain, judgeerr.Wrap(judgeerr.IO, "create checker scratch dir", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.txt")
	outputPath := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(inputPath, []byte(input), 0644); err != nil {
		return verdict.Uncertain, judgeerr.Wrap(judgeerr.IO, "write checker input.txt", err)
	}
	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return verdict.Uncertain, judgeerr.Wrap(judgeerr.IO, "write checker output.txt", err)
	}

	checkerPath, err := filepath.Abs(j.CheckerPath)
	if err != nil {
		return verdict.Uncertain, judgeerr.Wrap(judgeerr.NotFound, "resolve checker path", err)
	}

	out, err := exec.Command(checkerPath, inputPath, outputPath).Output()
	if err != nil {
		return verdict.Uncertain, judgeerr.Wrap(judgeerr.Environment, "run checker", err)
	}

	line, ok := firstNonBlankLine(string(out))
	if !ok {
		return verdict.Uncertain, judgeerr.New(judgeerr.UserProgram, "checker produced no output")
	}
	v, ok := verdictToken(line)
	if !ok {
		return verdict.Uncertain, judgeerr.New(judgeerr.UserProgram, "checker gave unknown result: "+line)
	}
	return v, nil
}
