// Package lint validates problem input/answer data before a case is ever
// judged. It is the in-scope, non-scripted stand-in for the judge's
// excluded scripted data-linter: a named set of byte-slice rules plus one
// concrete rule, TokenSpec, that walks a file with internal/scanner and
// checks it against a declared token shape (count, kind, bounds).
package lint

import (
	"fmt"
	"sort"

	"github.com/kanaricc/tank/internal/scanner"
)

// Rule inspects raw file bytes and returns zero or more warnings.
type Rule func(data []byte) []string

// Linter aggregates named rules: a name -> rule map, deliberately without
// a scripting layer for problem authors to supply rules as embedded code.
type Linter struct {
	rules map[string]Rule
}

// New returns an empty linter with no registered rules.
func New() *Linter {
	return &Linter{rules: make(map[string]Rule)}
}

// Register adds or replaces a named rule.
func (l *Linter) Register(name string, rule Rule) {
	l.rules[name] = rule
}

// LoadDefault registers the built-in rules (currently unexpected-bytes).
// Problem loading does not call it: internal/problem lints case files with
// the declared TokenSpec only.
func (l *Linter) LoadDefault() {
	l.Register("unexpected-bytes", UnexpectedBytes)
}

// WithTokenSpec registers a TokenSpec-driven rule under name.
func (l *Linter) WithTokenSpec(name string, spec TokenSpec) {
	l.Register(name, spec.Check)
}

// Check runs every registered rule over data and returns all warnings,
// each prefixed with the rule name that produced it. Rules run in a
// deterministic (sorted-by-name) order so output is reproducible.
func (l *Linter) Check(data []byte) []string {
	names := make([]string, 0, len(l.rules))
	for name := range l.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		for _, w := range l.rules[name](data) {
			warnings = append(warnings, name+": "+w)
		}
	}
	return warnings
}

// UnexpectedBytes flags control bytes below 32 other than LF (10) — mirrors
// the original linter's sole default rule. Bytes like CR, BEL, form-feed
// rarely belong in contest input/answer data and usually indicate a
// corrupted or wrongly-encoded file.
func UnexpectedBytes(data []byte) []string {
	var warnings []string
	for _, b := range data {
		if b < 32 && b != 10 {
			warnings = append(warnings, fmt.Sprintf("unexpected byte: %d", b))
		}
	}
	return warnings
}

// Kind is the token type a TokenSpec expects from each whitespace-separated
// token in a file.
type Kind int

const (
	Int Kind = iota
	Float
	String
)

// TokenSpec describes the expected shape of a whitespace-separated token
// stream: a token kind, an optional exact count (0 means unbounded), and
// optional inclusive bounds (meaningful only for Int).
type TokenSpec struct {
	Kind  Kind
	Count int
	Min   *int64
	Max   *int64
}

// Check walks data token by token with a scanner.Scanner and validates each
// token against this TokenSpec, returning one warning per violation. A parse
// failure for the declared kind stops the walk: the token stream is
// presumed corrupt past that point, rather than emitting a cascade of
// derived errors from a single misread.
func (spec TokenSpec) Check(data []byte) []string {
	sc := scanner.New(data)
	var warnings []string
	count := 0

	for {
		skipSeparators(sc)
		if _, ok := sc.Peek(); !ok {
			break
		}

		switch spec.Kind {
		case Int:
			v, err := sc.ReadInt()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("token %d: expected an integer: %v", count, err))
				return warnings
			}
			if spec.Min != nil && v < *spec.Min {
				warnings = append(warnings, fmt.Sprintf("token %d: %d is below minimum %d", count, v, *spec.Min))
			}
			if spec.Max != nil && v > *spec.Max {
				warnings = append(warnings, fmt.Sprintf("token %d: %d exceeds maximum %d", count, v, *spec.Max))
			}
		case Float:
			if _, err := sc.ReadFloat(); err != nil {
				warnings = append(warnings, fmt.Sprintf("token %d: expected a float: %v", count, err))
				return warnings
			}
		case String:
			if _, err := sc.ReadStr(); err != nil {
				warnings = append(warnings, fmt.Sprintf("token %d: %v", count, err))
				return warnings
			}
		}
		count++
	}

	if spec.Count > 0 && count != spec.Count {
		warnings = append(warnings, fmt.Sprintf("expected %d tokens, found %d", spec.Count, count))
	}
	return warnings
}

// skipSeparators advances past whitespace between tokens. ReadBlock stops
// at whitespace but does not skip it, so callers walking a whole file must
// do this themselves between tokens.
func skipSeparators(sc *scanner.Scanner) {
	for {
		b, ok := sc.Peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\n', '\r', '\t':
			sc.ReadByte()
		default:
			return
		}
	}
}
