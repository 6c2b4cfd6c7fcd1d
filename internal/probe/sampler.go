//go:build linux

package probe

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sample is a point-in-time, non-authoritative reading of a live process.
// It exists for progress reporting only — classification must never use it,
// since short-lived programs can exit between samples and /proc read
// latency makes the numbers approximate.
type Sample struct {
	CPUJiffies uint64
	RSSKB      uint64
}

// Sampler reads /proc/<pid>/stat and the RSS of a running process. Grounded
// on the same /proc parsing a standalone resource-consumption library in
// the retrieved pack uses for its own non-authoritative collector.
type Sampler struct {
	pid int
}

func NewSampler(pid int) *Sampler {
	return &Sampler{pid: pid}
}

// Sample reads the process's current CPU jiffies and RSS. Returns an error
// if the process has already exited — callers should treat that as "stop
// sampling", not as a judge error.
func (s *Sampler) Sample() (Sample, error) {
	utime, stime, err := readProcStatCPU(s.pid)
	if err != nil {
		return Sample{}, err
	}
	rssKB, err := readProcRSS(s.pid)
	if err != nil {
		return Sample{}, err
	}
	return Sample{CPUJiffies: utime + stime, RSSKB: rssKB}, nil
}

func readProcStatCPU(pid int) (utime, stime uint64, err error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return 0, 0, fmt.Errorf("probe: empty /proc/%d/stat", pid)
	}
	line := sc.Text()

	// comm is the 2nd field, parenthesized and may itself contain spaces
	// and parens; the last ") " marks where the fixed numeric fields start.
	i := strings.LastIndex(line, ") ")
	if i < 0 {
		return 0, 0, fmt.Errorf("probe: malformed /proc/%d/stat", pid)
	}
	fields := strings.Fields(line[i+2:])
	// utime is the 14th field overall -> fields[11]; stime is fields[12].
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("probe: short /proc/%d/stat", pid)
	}
	utime, _ = strconv.ParseUint(fields[11], 10, 64)
	stime, _ = strconv.ParseUint(fields[12], 10, 64)
	return utime, stime, nil
}

// readProcRSS prefers smaps_rollup (aggregated, accurate, kernel >= 4.14)
// and falls back to statm's resident page count when it isn't available.
func readProcRSS(pid int) (uint64, error) {
	if f, err := os.Open(fmt.Sprintf("/proc/%d/smaps_rollup", pid)); err == nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := sc.Text()
			if !strings.HasPrefix(line, "Rss:") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if kb, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
					return kb, nil
				}
			}
		}
	}

	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/statm", pid))
	if err != nil {
		return 0, fmt.Errorf("probe: no RSS available for pid %d: %w", pid, err)
	}
	fields := strings.Fields(string(b))
	if len(fields) < 2 {
		return 0, fmt.Errorf("probe: malformed /proc/%d/statm", pid)
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("probe: malformed /proc/%d/statm: %w", pid, err)
	}
	return pages * uint64(os.Getpagesize()) / 1024, nil
}
