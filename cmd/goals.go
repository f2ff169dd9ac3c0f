package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

type addGoalCmd struct {
	target float64
}

func (*addGoalCmd) Name() string     { return "add-goal" }
func (*addGoalCmd) Synopsis() string { return "set a goal target or add an entry to a goal track" }
func (*addGoalCmd) Usage() string {
	return `horizon add-goal [-target <amount>] <track> [<client> <amount>]

  Sets the target of a goal track with -target, creating the track if needed,
  and credits an amount to a client in the track when both are given.

Usage Examples:
$ horizon add-goal -target 1000000 Retention
$ horizon add-goal Retention ACME 250000
`
}

func (c *addGoalCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.target, "target", 0, "target amount of the track")
}

func (c *addGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setTarget := false
	f.Visit(func(fl *flag.Flag) { setTarget = setTarget || fl.Name == "target" })

	if f.NArg() != 1 && f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "add-goal takes a track, and optionally a client and an amount")
		return subcommands.ExitUsageError
	}
	if f.NArg() == 1 && !setTarget {
		fmt.Fprintln(os.Stderr, "add-goal needs -target or a client and an amount")
		return subcommands.ExitUsageError
	}
	track := f.Arg(0)

	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}

	if setTarget {
		s.workspace.SetTarget(track, c.target)
		fmt.Printf("Set target of %s to %s.\n", track, horizon.ARS(c.target))
	}
	if f.NArg() == 3 {
		client := f.Arg(1)
		amount, err := strconv.ParseFloat(f.Arg(2), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(2), err)
			return subcommands.ExitUsageError
		}
		if _, err := s.workspace.AddEntry(track, client, amount); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		t := s.workspace.Track(track)
		fmt.Printf("Added entry %d to %s.\n", len(t.Entries), t.Name)
	}
	return s.save()
}

type rmGoalCmd struct{}

func (*rmGoalCmd) Name() string     { return "rm-goal" }
func (*rmGoalCmd) Synopsis() string { return "remove an entry from a goal track" }
func (*rmGoalCmd) Usage() string {
	return `horizon rm-goal <track> <entry>

  Removes the entry designated by its id or its position, starting at 1, from
  the goal track.
`
}

func (c *rmGoalCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "rm-goal takes a track and an entry")
		return subcommands.ExitUsageError
	}
	track, ref := f.Arg(0), f.Arg(1)

	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}
	if err := s.workspace.RemoveEntry(track, ref); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Removed entry %s of %s.\n", ref, s.workspace.Track(track).Name)
	return subcommands.ExitSuccess
}

type gaugeCmd struct{}

func (*gaugeCmd) Name() string     { return "gauge" }
func (*gaugeCmd) Synopsis() string { return "display how far the goal tracks are from their targets" }
func (*gaugeCmd) Usage() string {
	return `horizon gauge [<track>...]

  Displays the completion, gap and tier of the goal tracks, every track by
  default, and the entries of each track.
`
}

func (c *gaugeCmd) SetFlags(f *flag.FlagSet) {}

func (c *gaugeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}

	tracks := s.workspace.Tracks
	if f.NArg() > 0 {
		tracks = nil
		for _, name := range f.Args() {
			t := s.workspace.Track(name)
			if t == nil {
				fmt.Fprintf(os.Stderr, "Error: no goal track %q\n", name)
				return subcommands.ExitFailure
			}
			tracks = append(tracks, *t)
		}
	}
	printMarkdown(renderer.GaugesMarkdown(tracks))
	return subcommands.ExitSuccess
}
