// Package judge implements the per-case drivers — normal, special, and
// interactive — that spawn the cell sandbox, collect resource usage and
// output, and classify the outcome into a verdict.Verdict.
package judge

import (
	"strings"

	"github.com/kanaricc/tank/internal/verdict"
)

// classify runs the classification ladder: time, then memory, then an
// allocator-fault sniff in stderr, then exit status. The first match wins;
// Uncertain means no limit tripped and the caller must defer to a
// comparator, checker, or interactor token.
func classify(limit verdict.LimitConfig, probe verdict.ProbeResult, stderr string) verdict.Verdict {
	switch {
	case probe.TimeMs >= limit.TimeLimitMs:
		return verdict.TimeLimitExceeded
	case probe.PeakMemoryKB >= limit.MemoryLimitKB():
		return verdict.MemoryLimitExceeded
	case strings.Contains(stderr, "bad_alloc"):
		return verdict.MemoryLimitExceeded
	case probe.Abnormal():
		return verdict.RuntimeError
	default:
		return verdict.Uncertain
	}
}

// verdictToken maps the same token alphabet the special-judge checker and
// the interactor both use. Returns ok=false for anything else.
func verdictToken(token string) (verdict.Verdict, bool) {
	switch token {
	case "same":
		return verdict.Accept, true
	case "different":
		return verdict.WrongAnswer, true
	case "pattern_different":
		return verdict.PresentationError, true
	default:
		return verdict.Uncertain, false
	}
}

// firstNonBlankLine returns the first line of s (split on LF, trimmed of
// surrounding whitespace) that is not empty after trimming.
func firstNonBlankLine(s string) (string, bool) {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
	return "", false
}
