package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

type plCmd struct {
	json bool
}

func (*plCmd) Name() string     { return "pl" }
func (*plCmd) Synopsis() string { return "display the projected profit and loss statement" }
func (*plCmd) Usage() string {
	return `horizon pl [-json]

  Displays the baseline statement consolidated with the scenario lines, the
  proposal by client, the scenario lines and the goal tracks.
`
}

func (c *plCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the projection as JSON")
}

func (c *plCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := openSession(ctx, true)
	if !ok {
		return subcommands.ExitFailure
	}
	in := s.inputs()
	p := horizon.Project(in)

	if c.json {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding projection: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ProjectionMarkdown(in, p))
	return subcommands.ExitSuccess
}
