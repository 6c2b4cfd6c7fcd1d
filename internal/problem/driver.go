package problem

import (
	"os"

	"github.com/kanaricc/tank/internal/judge"
	"github.com/kanaricc/tank/internal/judgeerr"
	"github.com/kanaricc/tank/internal/verdict"
)

// Driver runs one compiled program through every case of a Config, in
// declaration order, dispatching each case to the judge mode the config
// declares.
type Driver struct {
	CellPath string
	Program  verdict.CompiledProgram
}

// Run executes every case and returns the results gathered. The first
// fatal error — a file that vanished between Load's existence check and
// read time, or a checker/interactor that misbehaves — aborts the rest of
// the batch; results already produced are still returned alongside it.
func (d Driver) Run(cfg *Config) ([]verdict.JudgeResult, error) {
	mode, err := cfg.JudgeMode.Resolve()
	if err != nil {
		return nil, err
	}

	results := make([]verdict.JudgeResult, 0, len(cfg.Cases))
	for _, cs := range cfg.Cases {
		result, err := d.runCase(cfg, mode, cs)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (d Driver) runCase(cfg *Config, mode verdict.JudgeMode, cs CaseConfig) (verdict.JudgeResult, error) {
	switch mode.Kind {
	case verdict.ModeNormal:
		input, err := os.ReadFile(cfg.Resolve(cs.InputFile))
		if err != nil {
			return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.NotFound, "read input file", err)
		}
		answer, err := os.ReadFile(cfg.Resolve(*cs.AnswerFile))
		if err != nil {
			return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.NotFound, "read answer file", err)
		}
		cmp, err := judge.ComparatorFor(mode.Comparator)
		if err != nil {
			return verdict.JudgeResult{}, err
		}
		return judge.NormalJudge{
			CellPath:   d.CellPath,
			Program:    d.Program,
			Input:      string(input),
			Answer:     string(answer),
			Limit:      cfg.LimitConfig.ToVerdict(),
			Comparator: cmp,
		}.Judge()

	case verdict.ModeSpecial:
		input, err := os.ReadFile(cfg.Resolve(cs.InputFile))
		if err != nil {
			return verdict.JudgeResult{}, judgeerr.Wrap(judgeerr.NotFound, "read input file", err)
		}
		return judge.SpecialJudge{
			CellPath:    d.CellPath,
			Program:     d.Program,
			Input:       string(input),
			Limit:       cfg.LimitConfig.ToVerdict(),
			CheckerPath: cfg.Resolve(mode.CheckerPath),
		}.Judge()

	case verdict.ModeInteractive:
		// The interactor receives the input *path*, not its contents — it
		// reads the file itself, per the interactor CLI contract.
		return judge.InteractiveJudge{
			CellPath:       d.CellPath,
			Program:        d.Program,
			Input:          cfg.Resolve(cs.InputFile),
			HasInput:       mode.HasInput,
			Limit:          cfg.LimitConfig.ToVerdict(),
			InteractorPath: cfg.Resolve(mode.InteractorPath),
		}.Judge()

	default:
		return verdict.JudgeResult{}, judgeerr.New(judgeerr.Argument, "unknown judge mode")
	}
}
