package judge

import (
	"errors"
	"io"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/verdict"
)

// msgKind tags the four events the broker mediates: output from each side
// and a quit signal from each side. A single tagged struct keeps the Go
// channel monomorphic rather than needing four message types.
type msgKind int

const (
	userOut msgKind = iota
	interactorOut
	userQuit
	interactorQuit
)

type brokerMsg struct {
	kind msgKind
	buf  []byte
}

// InteractiveJudge mediates a dialogue between a sandboxed user program and
// a trusted interactor, logging every byte while forwarding it, and
// enforcing an ordered teardown: the interactor must never outlive the
// user program.
type InteractiveJudge struct {
	CellPath       string
	Program        verdict.CompiledProgram
	Input          string // passed as the interactor's sole argv entry, iff HasInput
	HasInput       bool
	Limit          verdict.LimitConfig
	InteractorPath string
}

// Judge spawns the interactor and the sandboxed user program, brokers their
// I/O until the user program exits, force-kills the interactor, classifies
// the outcome, and — if still Uncertain — consults the interactor's verdict
// token from the first non-blank line of its stderr.
func (j InteractiveJudge) Judge() (verdict.JudgeResult, error) {
	interactorArgs := []string(nil)
	if j.HasInput {
		interactorArgs = []string{j.Input}
	}
	interactorCmd := exec.Command(j.InteractorPath, interactorArgs...)
	iin, err := interactorCmd.StdinPipe()
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "open interactor stdin", err)
	}
	iout, err := interactorCmd.StdoutPipe()
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "open interactor stdout", err)
	}
	ierr, err := interactorCmd.StderrPipe()
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "open interactor stderr", err)
	}
	if err := interactorCmd.Start(); err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.Environment, "spawn interactor", err)
	}

	userCmd, cin, cout, cerr, err := spawnCell(j.CellPath, j.Program, j.Limit, "minimum")
	if err != nil {
		return verdict.JudgeResult{}, err
	}
	p := probeFor(userCmd)

	ch := make(chan brokerMsg, 64)
	var capturedOutput, capturedInput []byte // capturedOutput: user's bytes; capturedInput: interactor's bytes

	var group errgroup.Group
	group.Go(func() error { return readLoop(cout, ch, userOut, userQuit) })
	group.Go(func() error { return readLoop(iout, ch, interactorOut, interactorQuit) })
	group.Go(func() error {
		return brokerLoop(ch, iin, cin, &capturedOutput, &capturedInput)
	})

	// The probe's return is the sole authoritative "the judge is over"
	// signal: the interactor is never trusted to end the session.
	probeResult, err := p.Watch()
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "wait for user program", err)
	}

	// Notice the broker in case it is still waiting on a message.
	select {
	case ch <- brokerMsg{kind: userQuit}:
	default:
	}

	// The interactor must terminate before the user program is considered
	// done with it; it is force-killed here even in the happy path where
	// it already exited on its own.
	if interactorCmd.Process != nil {
		_ = interactorCmd.Process.Kill()
		_ = interactorCmd.Wait()
	}

	if err := group.Wait(); err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "interactive broker", err)
	}

	userErrOut, err := io.ReadAll(cerr)
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "read user stderr", err)
	}
	interactorErrOut, err := io.ReadAll(ierr)
	if err != nil {
		return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.IO, "read interactor stderr", err)
	}

	status := classify(j.Limit, probeResult, string(userErrOut))
	if status == verdict.Uncertain {
		line, ok := firstNonBlankLine(string(interactorErrOut))
		if !ok {
			return verdict.JudgeResult{}, judgeerr.New(judgeerr.UserProgram, "interactor gives no response")
		}
		v, ok := verdictToken(line)
		if !ok {
			return verdict.JudgeResult{}, judgeerr.New(judgeerr.UserProgram, "interactor gives unknown result: "+line)
		}
		status = v
	}

	return verdict.JudgeResult{
		Status:       status,
		TimeMs:       uint64Ptr(probeResult.TimeMs),
		PeakMemoryKB: uint64Ptr(probeResult.PeakMemoryKB),
		Stdin:        bytesPtr(capturedInput),
		Stdout:       bytesPtr(capturedOutput),
		Stderr:       stringPtr(string(userErrOut)),
	}, nil
}

// readLoop owns one output pipe. It forwards every nonempty read as an
// out-kind message and, on EOF, broken pipe, or a zero-length read, sends
// a terminal quit message and returns. A zero-length read is treated as
// EOF rather than retried — unlike the original source, which spun on it.
func readLoop(r io.Reader, ch chan<- brokerMsg, out, quit msgKind) error {
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			ch <- brokerMsg{kind: out, buf: cp}
		}
		if err != nil || n == 0 {
			if err == nil || err == io.EOF || isBrokenPipe(err) {
				ch <- brokerMsg{kind: quit}
				return nil
			}
			return err
		}
	}
}

// brokerLoop is the single mailbox mediating the cyclic pipe graph: user
// stdout feeds the interactor's stdin and vice versa. Only this goroutine
// touches outLog/inLog, so no lock is needed — the caller reads them only
// after group.Wait() has joined this goroutine.
func brokerLoop(ch <-chan brokerMsg, interactorStdin, userStdin io.WriteCloser, outLog, inLog *[]byte) error {
	defer interactorStdin.Close()
	defer userStdin.Close()
	for msg := range ch {
		switch msg.kind {
		case userOut:
			*outLog = append(*outLog, msg.buf...)
			if _, err := interactorStdin.Write(msg.buf); err != nil {
				if isBrokenPipe(err) {
					return nil
				}
				return err
			}
		case interactorOut:
			*inLog = append(*inLog, msg.buf...)
			if _, err := userStdin.Write(msg.buf); err != nil {
				if isBrokenPipe(err) {
					return nil
				}
				return err
			}
		case userQuit, interactorQuit:
			return nil
		}
	}
	return nil
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

func bytesPtr(b []byte) *string {
	s := string(b)
	return &s
}
