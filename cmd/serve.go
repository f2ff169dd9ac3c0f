package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the calculations as a JSON API" }
func (*serveCmd) Usage() string {
	return `horizon serve [-port <port>]

  Serves the calculations as a JSON API:

    GET  /api/healthz
    GET  /api/dataset      the dataset of the configuration
    POST /api/scenario     a line, a catalog and coefficients to a line result
    POST /api/pl           projection inputs to the consolidated statement
    POST /api/gauge        a goal track to its gauge
    POST /api/projection   projection inputs to the whole projection

  The port defaults to the [server] port of the configuration.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "port to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port != 0 {
		config.Server.Port = c.port
	}
	if !*Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	s := server.New(func(ctx context.Context) (*horizon.Dataset, error) {
		return DecodeDataset(ctx, config)
	})
	log.Printf("serving on %s", config.Addr())
	if err := s.Run(config.Addr()); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
