//go:build linux && !amd64

package cell

import "fmt"

// Spec mirrors the amd64 Spec; kept in sync by hand since non-amd64 Linux
// is not a supported cell target (Launch below always fails).
type Spec struct {
	TargetPath    string
	MemoryLimitMB uint64
	TimeLimitMs   uint64
	Profile       Profile
	UserArgs      []string
}

// Launch is unimplemented outside amd64: the allow-list filter hand-codes
// struct seccomp_data argument offsets and syscall numbers that are
// architecture-specific, and the judge this project ships with only
// targets x86_64 contest-judge hosts.
func Launch(spec Spec) error {
	return fmt.Errorf("cell: syscall filtering is only implemented for linux/amd64")
}
