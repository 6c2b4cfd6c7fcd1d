package problem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kanaricc/tank/internal/verdict"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

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

func TestDriverRunsNormalCasesInOrder(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	cat := writeScript(t, dir, "cat-through", "cat\n")

	writeFile(t, dir, "1.in", "hello")
	writeFile(t, dir, "1.out", "hello")
	writeFile(t, dir, "2.in", "hello")
	writeFile(t, dir, "2.out", "goodbye")
	writeFile(t, dir, "problem.yaml", `
name: echo-problem
limit_config: {time_limit_ms: 5000, memory_limit_mb: 256}
judge_mode: {kind: normal, comparator: value}
cases:
  - input_file: 1.in
    answer_file: 1.out
  - input_file: 2.in
    answer_file: 2.out
`)

	cfg, err := Load(filepath.Join(dir, "problem.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	driver := Driver{CellPath: cell, Program: verdict.CompiledProgram{Path: cat}}
	results, err := driver.Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Status != verdict.Accept {
		t.Errorf("case 1 Status = %v, want Accept", results[0].Status)
	}
	if results[1].Status != verdict.WrongAnswer {
		t.Errorf("case 2 Status = %v, want WrongAnswer", results[1].Status)
	}
}

func TestDriverAbortsBatchOnFatalError(t *testing.T) {
	dir := t.TempDir()
	cell := fakeCell(t, dir)
	echo := writeScript(t, dir, "echo-fixed", "echo ok\n")
	checker := writeScript(t, dir, "checker-bogus", "echo bogus\n")

	writeFile(t, dir, "1.in", "x")
	writeFile(t, dir, "2.in", "x")
	writeFile(t, dir, "problem.yaml", `
name: special-problem
limit_config: {time_limit_ms: 5000, memory_limit_mb: 256}
judge_mode: {kind: special, checker: checker-bogus}
cases:
  - input_file: 1.in
    answer_file: 1.in
  - input_file: 2.in
    answer_file: 2.in
`)
	_ = checker

	cfg, err := Load(filepath.Join(dir, "problem.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	driver := Driver{CellPath: cell, Program: verdict.CompiledProgram{Path: echo}}
	results, err := driver.Run(cfg)
	if err == nil {
		t.Fatal("Run should have failed: checker produces an unknown token")
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0 (first case itself fails)", len(results))
	}
}
