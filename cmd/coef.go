package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

type coefCmd struct {
	indirect float64
	labor    float64
	opex     float64
	target   float64
	reset    bool
}

func (*coefCmd) Name() string     { return "coef" }
func (*coefCmd) Synopsis() string { return "display or tune the coefficients" }
func (*coefCmd) Usage() string {
	return `horizon coef [-indirect <pct>] [-labor <pct>] [-opex <amount>] [-target <pct>] [-reset]

  Displays the coefficients of the projection. Flags override the dataset
  coefficients in the workspace, -reset goes back to the dataset ones.
  See 'horizon topic coefficients'.
`
}

func (c *coefCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.indirect, "indirect", 0, "indirect overhead, in percent")
	f.Float64Var(&c.labor, "labor", 0, "labor burden, in percent")
	f.Float64Var(&c.opex, "opex", 0, "operating expense override, 0 to use the baseline one")
	f.Float64Var(&c.target, "target", 0, "target margin, in percent")
	f.BoolVar(&c.reset, "reset", false, "use the dataset coefficients")
}

func (c *coefCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}

	changed := false
	if c.reset {
		s.workspace.Coefficients = nil
		changed = true
	}
	coef := s.inputs().Coefficients
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "indirect":
			coef.IndirectOverheadPct = c.indirect
		case "labor":
			coef.LaborBurdenPct = c.labor
		case "opex":
			coef.OperatingExpenseOverride = c.opex
		case "target":
			coef.TargetMarginPct = c.target
		default:
			return
		}
		changed = true
		s.workspace.Coefficients = &coef
	})

	if changed {
		if status := s.save(); status != subcommands.ExitSuccess {
			return status
		}
	}
	coef = s.inputs().Coefficients
	if coef != s.dataset.Coefficients() {
		fmt.Fprintln(os.Stderr, "Coefficients are tuned in the workspace, use -reset to go back to the dataset ones.")
	}
	printMarkdown(renderer.CoefficientsMarkdown(coef))
	return subcommands.ExitSuccess
}
