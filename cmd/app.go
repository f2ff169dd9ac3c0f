// Package cmd implements the CLI application to simulate sales and project
// their profit and loss statement.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/horizon"
	"github.com/etnz/horizon/history"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to $"+EnvConfig+", then "+DefaultConfigFile)
var workspaceFile = flag.String("workspace", "", "Path to the workspace file. Overrides the configuration.")

// Verbose enables the loading logs.
var Verbose = flag.Bool("v", false, "verbose logs")

// Commands lists every subcommand, by group.
var Commands = map[string][]subcommands.Command{
	"data": {
		&recordsCmd{},
		&catalogCmd{},
	},
	"scenario": {
		&linesCmd{},
		&addLineCmd{},
		&editLineCmd{},
		&rmLineCmd{},
		&clearLinesCmd{},
		&coefCmd{},
		&plCmd{},
	},
	"goals": {
		&addGoalCmd{},
		&rmGoalCmd{},
		&gaugeCmd{},
	},
	"history": {
		&saveCmd{},
		&historyCmd{},
		&loadCmd{},
	},
	"help": {
		&topicCmd{},
		&assistCmd{},
		&serveCmd{},
	},
}

// Groups is the display order of the command groups.
var Groups = []string{"data", "scenario", "goals", "history", "help"}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range Groups {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// DecodeConfig loads the application configuration.
func DecodeConfig() (*Config, error) {
	config, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *workspaceFile != "" {
		config.Workspace = *workspaceFile
	}
	return config, nil
}

// DecodeDataset loads the dataset the configuration points to.
func DecodeDataset(ctx context.Context, config *Config) (*horizon.Dataset, error) {
	src, err := config.Source()
	if err != nil {
		return nil, err
	}
	ds, err := horizon.LoadDataset(ctx, src)
	if err != nil {
		return nil, err
	}
	if *Verbose {
		log.Printf("loaded %d catalog entries, %d clients, %d parameters and %d baseline concepts from %s",
			len(ds.Catalog), len(ds.Clients), ds.Parameters.Len(), ds.Baseline.Len(), config.Data.Source)
	}
	return ds, nil
}

// DecodeWorkspace loads the workspace file, and applies the goal targets of
// the configuration.
func DecodeWorkspace(config *Config) (*horizon.Workspace, error) {
	w, err := horizon.LoadWorkspace(config.Workspace)
	if err != nil {
		return nil, err
	}
	for _, g := range config.Goals {
		w.SetTarget(g.Name, g.Target)
	}
	if *Verbose {
		log.Printf("loaded %d scenario lines and %d goal tracks from %s", len(w.Lines), len(w.Tracks), config.Workspace)
	}
	return w, nil
}

// EncodeWorkspace saves the workspace file.
func EncodeWorkspace(config *Config, w *horizon.Workspace) error {
	if err := w.Save(config.Workspace); err != nil {
		return fmt.Errorf("could not save workspace %q: %w", config.Workspace, err)
	}
	return nil
}

// OpenHistory opens the snapshot store. The caller must close it with
// history.Close.
func OpenHistory(ctx context.Context, config *Config) (history.Store, error) {
	return history.Open(ctx, config.History.File, config.History.DatabaseURL)
}

// session is what most commands start from.
type session struct {
	config    *Config
	workspace *horizon.Workspace
	dataset   *horizon.Dataset
}

// openSession loads the configuration and the workspace, and the dataset when
// withDataset is set. Errors are reported on stderr.
func openSession(ctx context.Context, withDataset bool) (*session, bool) {
	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, false
	}
	w, err := DecodeWorkspace(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading workspace: %v\n", err)
		return nil, false
	}
	s := &session{config: config, workspace: w}
	if withDataset {
		s.dataset, err = DecodeDataset(ctx, config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
			return nil, false
		}
	}
	return s, true
}

func (s *session) inputs() horizon.Inputs { return s.workspace.Inputs(s.dataset) }

// save writes the workspace back, reporting errors on stderr.
func (s *session) save() subcommands.ExitStatus {
	if err := EncodeWorkspace(s.config, s.workspace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is when stdout
// is not one.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}

func renderMarkdown(md string) string {
	if !isTerminal(os.Stdout) {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
