package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

// lineFlags are the flags that edit a scenario line. Only the flags set on the
// command line are applied.
type lineFlags struct {
	client string
	item   int
	qty    float64
	price  float64
	salary float64
}

func (l *lineFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.client, "client", "", "client the line is sold to")
	f.IntVar(&l.item, "item", 0, "catalog index of the item sold, resets price and salary to the catalog ones")
	f.Float64Var(&l.qty, "qty", 1, "quantity sold")
	f.Float64Var(&l.price, "price", 0, "unit sale price")
	f.Float64Var(&l.salary, "salary", 0, "gross salary, for staffing items")
}

func (l *lineFlags) edit(f *flag.FlagSet) horizon.LineEdit {
	var e horizon.LineEdit
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "client":
			e.ClientRef = &l.client
		case "item":
			e.CatalogIndex = &l.item
		case "qty":
			e.Quantity = &l.qty
		case "price":
			e.UnitSalePrice = &l.price
		case "salary":
			e.GrossSalary = &l.salary
		}
	})
	return e
}

// checkLine warns about a line the projection will not count as expected.
func checkLine(l horizon.ScenarioLine, ds *horizon.Dataset) {
	if l.CatalogIndex < 0 || l.CatalogIndex >= len(ds.Catalog) {
		log.Printf("Warning: item %d is not in the catalog, the line is worth nothing", l.CatalogIndex)
	}
	if l.Quantity.Float64() < 0 {
		log.Printf("Warning: negative quantity %v counts as 0", l.Quantity.Float64())
	}
}

type linesCmd struct{}

func (*linesCmd) Name() string     { return "lines" }
func (*linesCmd) Synopsis() string { return "display the scenario lines and their results" }
func (*linesCmd) Usage() string {
	return `horizon lines

  Displays the scenario lines of the workspace with their revenue, cost, net
  and margin. Lines below the target margin are flagged.
`
}

func (c *linesCmd) SetFlags(f *flag.FlagSet) {}

func (c *linesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}
	in := s.inputs()
	printMarkdown(renderer.ScenariosMarkdown(in, horizon.ComputeScenarios(in.Lines, in.Catalog, in.Coefficients)))
	return subcommands.ExitSuccess
}

type addLineCmd struct {
	lineFlags
}

func (*addLineCmd) Name() string     { return "add-line" }
func (*addLineCmd) Synopsis() string { return "add a scenario line" }
func (*addLineCmd) Usage() string {
	return `horizon add-line [-client <client>] [-item <index>] [-qty <quantity>] [-price <price>] [-salary <salary>]

  Adds a scenario line. Without flags, the line sells one unit of the first
  catalog item to the first client, at the catalog price and salary.
`
}

func (c *addLineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}
	l := s.workspace.AddLine(s.dataset.Catalog, s.dataset.Clients)
	l, err := s.workspace.UpdateLine(l.ID, s.dataset.Catalog, c.edit(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	checkLine(l, s.dataset)
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added line %d (%s).\n", len(s.workspace.Lines), l.ID)
	return subcommands.ExitSuccess
}

type editLineCmd struct {
	lineFlags
}

func (*editLineCmd) Name() string     { return "edit-line" }
func (*editLineCmd) Synopsis() string { return "edit a scenario line" }
func (*editLineCmd) Usage() string {
	return `horizon edit-line [-client <client>] [-item <index>] [-qty <quantity>] [-price <price>] [-salary <salary>] <line>

  Edits the line designated by its id or its position, starting at 1. Only the
  flags given are changed. Changing the item resets the price and salary to
  the catalog ones, unless -price or -salary are given too.
`
}

func (c *editLineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "edit-line takes exactly one line")
		return subcommands.ExitUsageError
	}
	ref := f.Arg(0)

	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}
	l, err := s.workspace.UpdateLine(ref, s.dataset.Catalog, c.edit(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	checkLine(l, s.dataset)
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Updated line %s.\n", ref)
	return subcommands.ExitSuccess
}

type rmLineCmd struct{}

func (*rmLineCmd) Name() string     { return "rm-line" }
func (*rmLineCmd) Synopsis() string { return "remove scenario lines" }
func (*rmLineCmd) Usage() string {
	return `horizon rm-line <line>...

  Removes the lines designated by their id or position, starting at 1.
  Positions are read before any line is removed.
`
}

func (c *rmLineCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmLineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "rm-line needs at least one line")
		return subcommands.ExitUsageError
	}
	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}

	if err := s.workspace.RemoveLines(f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	for _, ref := range f.Args() {
		fmt.Printf("Removed line %s.\n", ref)
	}
	return subcommands.ExitSuccess
}

type clearLinesCmd struct{}

func (*clearLinesCmd) Name() string     { return "clear-lines" }
func (*clearLinesCmd) Synopsis() string { return "remove every scenario line" }
func (*clearLinesCmd) Usage() string {
	return `horizon clear-lines

  Removes every scenario line of the workspace. Goal tracks are kept.
`
}

func (c *clearLinesCmd) SetFlags(f *flag.FlagSet) {}

func (c *clearLinesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, false)
	if !ok {
		return subcommands.ExitFailure
	}
	n := len(s.workspace.Lines)
	s.workspace.ClearLines()
	if status := s.save(); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Removed %d line(s).\n", n)
	return subcommands.ExitSuccess
}
