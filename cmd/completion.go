package cmd

import (
	"flag"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application: every
// subcommand with its flags, and the arguments that can be listed.
//
// Install it with COMP_INSTALL=1 horizon.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}

	tracks := predict.Set{}
	for _, t := range horizon.DefaultGoalTracks() {
		tracks = append(tracks, t.Name)
	}
	topics, _ := docs.GetAllTopics()
	args := map[string]complete.Predictor{
		"records":  predict.Set(Sheets),
		"topic":    predict.Set(append(topics, "*")),
		"gauge":    tracks,
		"add-goal": tracks,
		"rm-goal":  tracks,
	}

	for _, group := range Groups {
		for _, cmd := range Commands[group] {
			root.Sub[cmd.Name()] = commandCompletion(cmd, args[cmd.Name()])
		}
	}
	help := predict.Set{}
	for name := range root.Sub {
		help = append(help, name)
	}
	root.Sub["help"] = &complete.Command{Args: help}
	root.Sub["flags"] = &complete.Command{}
	root.Sub["commands"] = &complete.Command{}
	return root
}

func commandCompletion(cmd subcommands.Command, args complete.Predictor) *complete.Command {
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	return &complete.Command{
		Flags: flagPredictors(f),
		Args:  args,
	}
}

// flagPredictors predicts nothing after a boolean flag, and a value otherwise.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case fl.Name == "config":
			predictors[fl.Name] = predict.Files("*.toml")
		case fl.Name == "workspace":
			predictors[fl.Name] = predict.Files("*.json")
		case fl.Name == "import":
			predictors[fl.Name] = predict.Files("*.json")
		case isBool(fl):
			predictors[fl.Name] = predict.Nothing
		default:
			predictors[fl.Name] = predict.Something
		}
	})
	return predictors
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
