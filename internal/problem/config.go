// Package problem loads a declarative problem definition — name, resource
// limits, judge mode, optional input/answer linting, and an ordered list of
// cases — and drives a compiled program through every case, dispatching to
// the correct judge mode per case and aggregating results.
package problem

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/lint"
	"github.com/kanaricc/tank/internal/verdict"
)

// LimitConfig mirrors verdict.LimitConfig with YAML tags; kept distinct so
// the wire format (snake_case YAML keys) doesn't leak into the domain type.
type LimitConfig struct {
	TimeLimitMs   uint64 `yaml:"time_limit_ms"`
	MemoryLimitMB uint64 `yaml:"memory_limit_mb"`
}

// ToVerdict converts to the domain LimitConfig every judge mode consumes.
func (l LimitConfig) ToVerdict() verdict.LimitConfig {
	return verdict.LimitConfig{TimeLimitMs: l.TimeLimitMs, MemoryLimitMB: l.MemoryLimitMB}
}

// CaseConfig names one case's input and (usually) answer file, relative to
// the problem config's directory.
type CaseConfig struct {
	InputFile  string  `yaml:"input_file"`
	AnswerFile *string `yaml:"answer_file,omitempty"`
}

// JudgeModeConfig is the YAML-level tagged union over the three judge
// modes. Only the fields relevant to Kind are meaningful; YAML has no
// native tagged-union support, so this mirrors verdict.JudgeMode's
// Kind-plus-every-field shape rather than three separate Go types.
type JudgeModeConfig struct {
	Kind       string `yaml:"kind"`
	Comparator string `yaml:"comparator,omitempty"`

	Checker string `yaml:"checker,omitempty"`

	Interactor string `yaml:"interactor,omitempty"`
	HasInput   bool   `yaml:"has_input,omitempty"`
}

// Resolve validates and converts a JudgeModeConfig into the domain
// verdict.JudgeMode, rejecting unknown mode kinds and unknown comparators
// early, before any file or process is touched.
func (m JudgeModeConfig) Resolve() (verdict.JudgeMode, error) {
	switch m.Kind {
	case "normal":
		cmp, err := verdict.ParseComparator(m.Comparator)
		if err != nil {
			return verdict.JudgeMode{}, judgeerr.Wrap(judgeerr.Argument, "judge_mode.comparator", err)
		}
		return verdict.JudgeMode{Kind: verdict.ModeNormal, Comparator: cmp}, nil
	case "special":
		if m.Checker == "" {
			return verdict.JudgeMode{}, judgeerr.New(judgeerr.Argument, "judge_mode.checker is required for kind: special")
		}
		return verdict.JudgeMode{Kind: verdict.ModeSpecial, CheckerPath: m.Checker}, nil
	case "interactive":
		if m.Interactor == "" {
			return verdict.JudgeMode{}, judgeerr.New(judgeerr.Argument, "judge_mode.interactor is required for kind: interactive")
		}
		return verdict.JudgeMode{Kind: verdict.ModeInteractive, InteractorPath: m.Interactor, HasInput: m.HasInput}, nil
	default:
		return verdict.JudgeMode{}, judgeerr.New(judgeerr.Argument, fmt.Sprintf("unknown judge_mode.kind %q", m.Kind))
	}
}

// TokenSpecConfig is the YAML shape of a lint.TokenSpec.
type TokenSpecConfig struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count,omitempty"`
	Min   *int64 `yaml:"min,omitempty"`
	Max   *int64 `yaml:"max,omitempty"`
}

func (t TokenSpecConfig) resolve() (lint.TokenSpec, error) {
	var kind lint.Kind
	switch t.Kind {
	case "int":
		kind = lint.Int
	case "float":
		kind = lint.Float
	case "string":
		kind = lint.String
	default:
		return lint.TokenSpec{}, fmt.Errorf("unknown lint token kind %q", t.Kind)
	}
	return lint.TokenSpec{Kind: kind, Count: t.Count, Min: t.Min, Max: t.Max}, nil
}

// LintConfig declares the optional input/answer linting a problem wants.
// It only ever selects a TokenSpec shape (see internal/lint), never an
// embedded script.
type LintConfig struct {
	Input  *TokenSpecConfig `yaml:"input,omitempty"`
	Answer *TokenSpecConfig `yaml:"answer,omitempty"`
}

// Config is a fully loaded problem definition, resolved relative to the
// directory its YAML file lives in.
type Config struct {
	Name        string          `yaml:"name"`
	LimitConfig LimitConfig     `yaml:"limit_config"`
	JudgeMode   JudgeModeConfig `yaml:"judge_mode"`
	Lint        *LintConfig     `yaml:"lint,omitempty"`
	Cases       []CaseConfig    `yaml:"cases"`

	dir string
}

// Load reads and validates a problem config from path. File existence for
// every case's input/answer file and, for Special mode, the checker, is
// checked up front — "first fatal error aborts the batch" begins at load
// time, before any case is spawned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, judgeerr.Wrap(judgeerr.NotFound, "problem config "+path, err)
		}
		return nil, judgeerr.Wrap(judgeerr.IO, "read problem config", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, judgeerr.Wrap(judgeerr.Argument, "parse problem config", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, judgeerr.Wrap(judgeerr.IO, "resolve problem config path", err)
	}
	cfg.dir = filepath.Dir(abs)

	if _, err := cfg.JudgeMode.Resolve(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve turns a path from the config (case files, checker, interactor)
// into an absolute path relative to the config's own directory.
func (c *Config) Resolve(path string) string {
	return filepath.Join(c.dir, path)
}

func (c *Config) validate() error {
	for _, cs := range c.Cases {
		if err := requireFile(c.Resolve(cs.InputFile), "input file"); err != nil {
			return err
		}
		if cs.AnswerFile != nil {
			if err := requireFile(c.Resolve(*cs.AnswerFile), "answer file"); err != nil {
				return err
			}
		}
		answerOptional := c.JudgeMode.Kind == "interactive" && !c.JudgeMode.HasInput
		if cs.AnswerFile == nil && !answerOptional {
			return judgeerr.New(judgeerr.Argument, "case missing answer_file: only allowed in interactive mode with has_input: false")
		}

		if c.Lint != nil {
			if err := c.lintCase(cs); err != nil {
				return err
			}
		}
	}

	switch c.JudgeMode.Kind {
	case "special":
		if err := requireFile(c.Resolve(c.JudgeMode.Checker), "checker"); err != nil {
			return err
		}
	case "interactive":
		if err := requireFile(c.Resolve(c.JudgeMode.Interactor), "interactor"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) lintCase(cs CaseConfig) error {
	if c.Lint.Input != nil {
		if err := lintFile(c.Resolve(cs.InputFile), *c.Lint.Input); err != nil {
			return err
		}
	}
	if c.Lint.Answer != nil && cs.AnswerFile != nil {
		if err := lintFile(c.Resolve(*cs.AnswerFile), *c.Lint.Answer); err != nil {
			return err
		}
	}
	return nil
}

func lintFile(path string, specCfg TokenSpecConfig) error {
	spec, err := specCfg.resolve()
	if err != nil {
		return judgeerr.Wrap(judgeerr.Argument, "lint config", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return judgeerr.Wrap(judgeerr.IO, "read "+path+" for linting", err)
	}
	if warnings := spec.Check(data); len(warnings) > 0 {
		return judgeerr.New(judgeerr.Argument, fmt.Sprintf("%s failed linting: %v", path, warnings))
	}
	return nil
}

func requireFile(path, what string) error {
	if _, err := os.Stat(path); err != nil {
		return judgeerr.Wrap(judgeerr.NotFound, what+" "+path, err)
	}
	return nil
}
