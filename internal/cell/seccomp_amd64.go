//go:build linux && amd64

package cell

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// offsets into struct seccomp_data on amd64 (see linux/seccomp.h): nr at 0,
// arch at 4, args[0..5] at 16, 8 bytes apart. Each 64-bit arg is compared
// as two little-endian 32-bit words since classic BPF only loads words.
const (
	offNr     = 0
	offArch   = 4
	offArgLo0 = 16
	offArgHi0 = 20
	offArgLo1 = 24
	offArgLo2 = 32
)

const auditArchX8664 = 0xc000003e // AUDIT_ARCH_X86_64

const (
	seccompRetKillProcess = 0x80000000
	seccompRetKillThread  = 0x00000000
	seccompRetAllow       = 0x7fff0000
)

var minimumUnconditional = []uint32{
	unix.SYS_READ,
	unix.SYS_WRITE,
	unix.SYS_CLOSE,
	unix.SYS_STAT,
	unix.SYS_FSTAT,
	unix.SYS_MMAP,
	unix.SYS_MPROTECT,
	unix.SYS_MUNMAP,
	unix.SYS_BRK,
	unix.SYS_PREAD64,
	unix.SYS_PWRITE64,
	unix.SYS_ACCESS,
	unix.SYS_EXIT,
	unix.SYS_ARCH_PRCTL,
	unix.SYS_EXIT_GROUP,
}

// buildFilter assembles the allow-list BPF program for profile with the
// default (no-match) action SECCOMP_RET_KILL_PROCESS.
func buildFilter(profile Profile, selfExecTarget *byte) ([]unix.SockFilter, error) {
	return buildFilterWithKillAction(profile, selfExecTarget, seccompRetKillProcess)
}

// buildFilterWithKillAction builds the same allow-list, gated to only
// allow execve of selfExecTarget (compared by the raw pathname pointer in
// execve's first syscall argument — valid
// because cell issues exactly one execve, immediately after installing
// this filter, with that exact pointer still live) — but lets the caller
// pick the default action, so installFilter can retry with plain
// SECCOMP_RET_KILL on kernels older than the one that added
// SECCOMP_RET_KILL_PROCESS (4.14).
func buildFilterWithKillAction(profile Profile, selfExecTarget *byte, killAction uint32) ([]unix.SockFilter, error) {
	a := newAsm()

	a.ld(offArch)
	a.jeq(auditArchX8664, "", "kill")

	a.ld(offNr)
	for _, nr := range minimumUnconditional {
		a.jeq(nr, "allow", "")
	}

	openFlags := uint32(unix.O_RDONLY | unix.O_CLOEXEC)

	switch profile {
	case IO:
		a.jeq(unix.SYS_OPENAT, "allow", "")
		a.jeq(unix.SYS_OPEN, "allow", "")
	default: // Minimum
		a.jeq(unix.SYS_OPENAT, "", "after_openat")
		a.ld(offArgLo2) // openat(dirfd, path, flags, mode) -> arg[2]
		a.jeq(openFlags, "allow", "after_openat")
		a.mark("after_openat")

		a.ld(offNr)
		a.jeq(unix.SYS_OPEN, "", "after_open")
		a.ld(offArgLo1) // open(path, flags, mode) -> arg[1]
		a.jeq(openFlags, "allow", "after_open")
		a.mark("after_open")
	}

	ptr := uintptr(unsafe.Pointer(selfExecTarget))
	ptrLo := uint32(ptr)
	ptrHi := uint32(ptr >> 32)

	a.ld(offNr)
	a.jeq(unix.SYS_EXECVE, "", "kill")
	a.ld(offArgLo0)
	a.jeq(ptrLo, "", "kill")
	a.ld(offArgHi0)
	a.jeq(ptrHi, "allow", "kill")

	a.ret(seccompRetAllow, "allow")
	a.ret(killAction, "kill")

	return a.assemble()
}
