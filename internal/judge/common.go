package judge

import (
	"io"
	"os/exec"

	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/probe"
)

// probeFor attaches a resource probe to a cell child that spawnCell already
// started. The caller must not also call cmd.Wait: the probe reaps the
// child itself via wait4, and a second reap attempt would fail with
// "no child processes".
func probeFor(cmd *exec.Cmd) *probe.Probe {
	return probe.New(cmd.Process.Pid)
}

// writeAndClose writes s to w and closes w, the shape every judge mode
// needs to avoid a read-to-EOF program deadlocking on an open stdin.
func writeAndClose(w io.WriteCloser, s string) (int, error) {
	n, err := io.WriteString(w, s)
	if err != nil {
		w.Close()
		return n, judgeerr.Wrap(judgeerr.IO, "write child stdin", err)
	}
	if err := w.Close(); err != nil {
		return n, judgeerr.Wrap(judgeerr.IO, "close child stdin", err)
	}
	return n, nil
}

// drain reads stdout and stderr to completion after the probe has
// returned, so the pipes are known to have no more writers.
func drain(stdout, stderr io.Reader) (out, errOut string, err error) {
	outBytes, err := io.ReadAll(stdout)
	if err != nil {
		return "", "", judgeerr.Wrap(judgeerr.IO, "read child stdout", err)
	}
	errBytes, err := io.ReadAll(stderr)
	if err != nil {
		return "", "", judgeerr.Wrap(judgeerr.IO, "read child stderr", err)
	}
	return string(outBytes), string(errBytes), nil
}
