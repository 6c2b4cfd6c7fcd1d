package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/kanaricc/tank/internal/problem"
	"github.com/kanaricc/tank/internal/verdict"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// colorize wraps s in an ANSI color when w is an interactive terminal; it
// stays plain when piped into a file or another process, matching the
// teacher's fd-based term.IsTerminal checks in egg.go.
func colorize(w io.Writer, code, s string) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s
	}
	return code + s + ansiReset
}

func printReport(w io.Writer, cfg *problem.Config, results []verdict.JudgeResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tVERDICT\tTIME\tMEMORY")
	for i, r := range results {
		verdictStr := r.Status.Short()
		if r.Status == verdict.Accept {
			verdictStr = colorize(w, ansiGreen, verdictStr)
		} else {
			verdictStr = colorize(w, ansiRed, verdictStr)
		}

		timeStr := "-"
		if r.TimeMs != nil {
			timeStr = humanize.Comma(int64(*r.TimeMs)) + "ms"
		}
		memStr := "-"
		if r.PeakMemoryKB != nil {
			memStr = humanize.Bytes(*r.PeakMemoryKB * 1024)
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, verdictStr, timeStr, memStr)
	}
	tw.Flush()

	accepted := 0
	for _, r := range results {
		if r.Status == verdict.Accept {
			accepted++
		}
	}
	fmt.Fprintf(w, "%s: %d/%d cases accepted\n", cfg.Name, accepted, len(cfg.Cases))
}
