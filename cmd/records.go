package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/renderer"
	"github.com/google/subcommands"
)

// Sheets lists the sheets of a dataset.
var Sheets = []string{horizon.SheetCatalog, horizon.SheetClients, horizon.SheetConfig, horizon.SheetBaseline}

type recordsCmd struct{}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "display the raw records of dataset sheets" }
func (*recordsCmd) Usage() string {
	return `horizon records [<sheet>...]

  Displays the sheets as they are read from the data source, every sheet by
  default. Sheets are PreciosNuevos, Clientes, Configuracion and EERRBase.
`
}

func (c *recordsCmd) SetFlags(f *flag.FlagSet) {}

func (c *recordsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sheets := f.Args()
	if len(sheets) == 0 {
		sheets = Sheets
	}

	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	src, err := config.Source()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, sheet := range sheets {
		records, err := src.Records(ctx, sheet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading sheet %q: %v\n", sheet, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RecordsMarkdown(sheet, records))
	}
	return subcommands.ExitSuccess
}

type catalogCmd struct{}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "display the catalog, clients and baseline statement" }
func (*catalogCmd) Usage() string {
	return `horizon catalog

  Displays the catalog with the index scenario lines refer to, the clients,
  the coefficients configured in the dataset and the baseline statement.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {}

func (c *catalogCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := DecodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	ds, err := DecodeDataset(ctx, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	clients := make([]horizon.Record, 0, len(ds.Clients))
	for _, c := range ds.Clients {
		clients = append(clients, horizon.NewRecord([]string{"Cliente"}, []string{c}))
	}

	printMarkdown(renderer.CatalogMarkdown(ds.Catalog))
	printMarkdown(renderer.RecordsMarkdown("Clientes", clients))
	printMarkdown(renderer.CoefficientsMarkdown(ds.Coefficients()))
	printMarkdown(renderer.ConceptsMarkdown("EERR Base", ds.Baseline))
	return subcommands.ExitSuccess
}
