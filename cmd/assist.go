package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `horizon assist [<question>]

  Starts an interactive session with the AI assistant, that can read the
  current projection. The session starts with the question, if any.
  The GEMINI_API_KEY environment variable must be set.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	// the projection is reloaded for every question, so that edits made in
	// another terminal are seen.
	project := func(ctx context.Context) (horizon.Inputs, error) {
		w, err := DecodeWorkspace(config)
		if err != nil {
			return horizon.Inputs{}, err
		}
		ds, err := DecodeDataset(ctx, config)
		if err != nil {
			return horizon.Inputs{}, err
		}
		return w.Inputs(ds), nil
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	agent.Verbose = *Verbose
	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(project), agent.NewEconomist())
	a.Render = renderMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
