package judge

import (
	"os"
	"path/filepath"
	"testing"
)

// writeScript writes an executable shell script to dir/name and returns its
// path. Used to stand in for the real cell binary and for checker/interactor
// helpers without requiring a build.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// fakeCell stands in for the real sandbox launcher: it accepts the same
// positional shape (target, -m, -t, -p, --, args...) but applies no limits
// and no filter, then execs the target in its own place. Good enough to
// exercise the judge's process plumbing and classification without a real
// seccomp build.
func fakeCell(t *testing.T, dir string) string {
	return writeScript(t, dir, "fake-cell", `target="$1"
shift
while [ "$1" != "--" ]; do
  shift
done
shift
exec "$target" "$@"
`)
}
