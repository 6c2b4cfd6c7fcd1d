//go:build linux && amd64

// Package cell is the sandbox launcher: it applies rlimits, installs a
// syscall allow-list, and execs the target program in place of itself.
// Rlimit application goes through unix.Setrlimit and the BPF filter installs
// via a raw SYS_SECCOMP syscall, with a per-profile allow-list in place of
// a deny-list filter.
package cell

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/kanaricc/tank/internal/judgeerr"
)

// Spec is what the judge tells cell to do: run targetPath under the given
// limits and profile, passing userArgs after argv[0].
type Spec struct {
	TargetPath    string
	MemoryLimitMB uint64
	TimeLimitMs   uint64
	Profile       Profile
	UserArgs      []string
}

// Launch never returns on success: it replaces the current process image
// via execve. On failure it returns an error describing what went wrong
// before the exec — the caller (cmd/cell's main) should exit nonzero so
// the probe reports it as a RuntimeError.
func Launch(spec Spec) error {
	target, err := filepath.Abs(spec.TargetPath)
	if err != nil {
		return judgeerr.Wrap(judgeerr.NotFound, "resolve target path", err)
	}
	if _, err := os.Stat(target); err != nil {
		return judgeerr.Wrap(judgeerr.NotFound, fmt.Sprintf("target %q", target), err)
	}

	if err := applyRlimits(spec.MemoryLimitMB, spec.TimeLimitMs); err != nil {
		return judgeerr.Wrap(judgeerr.Environment, "apply rlimits", err)
	}

	argv := append([]string{filepath.Base(target)}, spec.UserArgs...)
	targetPtr, err := unix.BytePtrFromString(target)
	if err != nil {
		return judgeerr.Wrap(judgeerr.Argument, "encode target path", err)
	}

	argvPtr, err := unix.SlicePtrFromStrings(argv)
	if err != nil {
		return judgeerr.Wrap(judgeerr.Argument, "encode argv", err)
	}
	envPtr, err := unix.SlicePtrFromStrings(os.Environ())
	if err != nil {
		return judgeerr.Wrap(judgeerr.Argument, "encode environ", err)
	}

	if spec.Profile != Full {
		if err := installFilter(spec.Profile, targetPtr); err != nil {
			return judgeerr.Wrap(judgeerr.Environment, "install seccomp filter", err)
		}
	}

	// No allocations between the filter's recorded target pointer and this
	// syscall: unix.BytePtrFromString's backing array must still be at the
	// address the filter compares against.
	_, _, errno := unix.RawSyscall(unix.SYS_EXECVE,
		uintptr(unsafe.Pointer(targetPtr)),
		uintptr(unsafe.Pointer(&argvPtr[0])),
		uintptr(unsafe.Pointer(&envPtr[0])))
	return fmt.Errorf("cell: execve %q: %w", target, errno)
}

func applyRlimits(memoryLimitMB, timeLimitMs uint64) error {
	as := unix.Rlimit{Cur: addressSpaceBytes(memoryLimitMB), Max: addressSpaceBytes(memoryLimitMB)}
	if err := unix.Setrlimit(unix.RLIMIT_AS, &as); err != nil {
		return fmt.Errorf("setrlimit(RLIMIT_AS): %w", err)
	}
	cpu := unix.Rlimit{Cur: cpuSeconds(timeLimitMs), Max: cpuSeconds(timeLimitMs)}
	if err := unix.Setrlimit(unix.RLIMIT_CPU, &cpu); err != nil {
		return fmt.Errorf("setrlimit(RLIMIT_CPU): %w", err)
	}
	return nil
}

func installFilter(profile Profile, selfExecTarget *byte) error {
	prog, err := buildFilter(profile, selfExecTarget)
	if err != nil {
		return err
	}

	if _, _, errno := unix.RawSyscall(unix.SYS_PRCTL, unix.PR_SET_NO_NEW_PRIVS, 1, 0); errno != 0 {
		return fmt.Errorf("prctl(NO_NEW_PRIVS): %w", errno)
	}

	fprog := unix.SockFprog{
		Len:    uint16(len(prog)),
		Filter: &prog[0],
	}

	// SECCOMP_SET_MODE_FILTER = 1. Try SECCOMP_FILTER_FLAG_NEW_LISTENER=0
	// with the default-kill-process action encoded in the filter itself;
	// if the running kernel predates SECCOMP_RET_KILL_PROCESS (< 4.14) it
	// rejects the whole install with EINVAL, so retry with plain
	// SECCOMP_RET_KILL baked into the program instead.
	if _, _, errno := unix.RawSyscall(unix.SYS_SECCOMP, 1, 0, uintptr(unsafe.Pointer(&fprog))); errno != 0 {
		if errno != unix.EINVAL {
			return fmt.Errorf("seccomp(SET_MODE_FILTER): %w", errno)
		}
		fallback, err := buildFilterWithKillAction(profile, selfExecTarget, seccompRetKillThread)
		if err != nil {
			return err
		}
		fprog = unix.SockFprog{Len: uint16(len(fallback)), Filter: &fallback[0]}
		if _, _, errno := unix.RawSyscall(unix.SYS_SECCOMP, 1, 0, uintptr(unsafe.Pointer(&fprog))); errno != 0 {
			return fmt.Errorf("seccomp(SET_MODE_FILTER) fallback: %w", errno)
		}
	}
	return nil
}
