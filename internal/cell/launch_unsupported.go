//go:build !linux

package cell

import "fmt"

// Spec mirrors the Linux Spec. The sandbox launcher is Linux-only: rlimits
// plus seccomp are the enforcement mechanism this project specifies, and
// portability beyond a single Unix host with /proc is explicitly out of
// scope.
type Spec struct {
	TargetPath    string
	MemoryLimitMB uint64
	TimeLimitMs   uint64
	Profile       Profile
	UserArgs      []string
}

func Launch(spec Spec) error {
	return fmt.Errorf("cell: only supported on linux")
}
