package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/history"
	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

type saveCmd struct{}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save the current scenario in the history" }
func (*saveCmd) Usage() string {
	return `horizon save [<name>]

  Saves a snapshot of the workspace (scenario lines, goal tracks and
  coefficients) together with the statement they produce.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		name = horizon.DefaultSnapshotName
	}

	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}
	store, err := OpenHistory(ctx, s.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer history.Close(store)

	snapshot := horizon.NewSnapshot(name, s.inputs(), time.Now())
	if err := store.Save(ctx, snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %q as %s.\n", snapshot.Name, snapshot.ID)
	return subcommands.ExitSuccess
}

type historyCmd struct {
	importFile string
	remove     string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list, import or remove saved scenarios" }
func (*historyCmd) Usage() string {
	return `horizon history [-import <file>] [-rm <id>]

  Lists the saved snapshots, most recent first.

  -import reads a history exported by the former shared spreadsheet tool and
  saves its rows into the history. -rm deletes a snapshot.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.importFile, "import", "", "legacy shared history file to import")
	f.StringVar(&c.remove, "rm", "", "id of the snapshot to delete")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := OpenHistory(ctx, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer history.Close(store)

	if c.importFile != "" {
		data, err := os.ReadFile(c.importFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.importFile, err)
			return subcommands.ExitFailure
		}
		snapshots, err := horizon.DecodeSharedHistory(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding %q: %v\n", c.importFile, err)
			return subcommands.ExitFailure
		}
		n, err := history.Import(ctx, store, snapshots)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error after %d snapshots: %v\n", n, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d snapshot(s).\n", n)
		return subcommands.ExitSuccess
	}

	if c.remove != "" {
		if err := store.Delete(ctx, c.remove); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed snapshot %s.\n", c.remove)
		return subcommands.ExitSuccess
	}

	snapshots, err := store.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing history: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(snapshots))
	return subcommands.ExitSuccess
}

type loadCmd struct{}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "restore a saved scenario into the workspace" }
func (*loadCmd) Usage() string {
	return `horizon load <id>

  Replaces the scenario lines, coefficients and goal entries of the workspace
  with the ones of the snapshot. Goal tracks the snapshot does not know are
  kept.
`
}

func (c *loadCmd) SetFlags(f *flag.FlagSet) {}

func (c *loadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "load takes exactly one snapshot id")
		return subcommands.ExitUsageError
	}
	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}
	store, err := OpenHistory(ctx, s.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer history.Close(store)

	snapshot, err := store.Get(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.workspace.Apply(snapshot)
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Loaded %q (%d line(s)).\n", snapshot.Name, len(snapshot.Lines))
	return subcommands.ExitSuccess
}
