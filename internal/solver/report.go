package solver

import (
	"fmt"
	"strings"
)

// ReportConfig controls the fixed-width printed-output table:
// configurable column widths and fitness precision.
type ReportConfig struct {
	FormulaWidth int
	Precision    int
}

// DefaultReportConfig matches the widths genforge uses for both the
// `--no-cli` batch summary and the REPL's `print` command.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{FormulaWidth: 60, Precision: 6}
}

// Report renders the hall-of-fame first, then the top of the pool,
// followed by a target-language-neutral code rendering of each listed
// pool formula (hall-of-fame entries get no code line).
func (s *Solver) Report(cfg ReportConfig) string {
	var b strings.Builder

	b.WriteString("Hall of fame:\n")
	writeTable(&b, s.hof.snapshot(), cfg)

	b.WriteString("\nTop of pool:\n")
	pool := s.pool.snapshot()
	top := pool
	if len(top) > 10 {
		top = top[len(top)-10:]
	}
	writeTable(&b, top, cfg)

	b.WriteString("\nCode:\n")
	for i := len(top) - 1; i >= 0; i-- {
		b.WriteString(top[i].Formula.ToCode())
		b.WriteString("\n")
	}

	return b.String()
}

func writeTable(b *strings.Builder, solutions []Solution, cfg ReportConfig) {
	header := fmt.Sprintf("%-*s  %s\n", cfg.FormulaWidth, "formula", "fitness")
	b.WriteString(header)

	// solutions are fitness-ascending; print best first.
	for i := len(solutions) - 1; i >= 0; i-- {
		sol := solutions[i]
		formulaText := sol.Formula.String()
		if len(formulaText) > cfg.FormulaWidth {
			formulaText = formulaText[:cfg.FormulaWidth-3] + "..."
		}
		b.WriteString(fmt.Sprintf("%-*s  %.*f\n", cfg.FormulaWidth, formulaText, cfg.Precision, sol.Fitness))
	}
}
