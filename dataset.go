package horizon

import (
	"context"
	"fmt"
	"strings"
)

// Names of the sheets a dataset is made of.
const (
	SheetCatalog  = "PreciosNuevos"
	SheetClients  = "Clientes"
	SheetConfig   = "Configuracion"
	SheetBaseline = "EERRBase"
)

// Columns are resolved by name first, then by position, because the sheets
// are maintained by hand and their headers drift.
var (
	configKeyColumn   = Col(0, "Parámetro", "Parametro", "Key")
	configValueColumn = Col(1, "Valor", "Value")

	baselineConceptColumn = Col(0, "Concepto")
	baselineAmountColumn  = Col(1, "Monto (ARS)", "Monto")

	catalogCategoryColumn = Col(0, "Categoria", "Categoría")
	catalogSubtypeColumn  = Col(1, "Tipo")
	catalogPriceColumn    = Col(2, "Valor (ARS)", "Valor")
	catalogSalaryColumn   = Col(3, "Sueldo Sugerido (ARS)", "Sueldo Sugerido")
	catalogFixedColumn    = Col(4, "Costo Fijo (ARS)", "Costo Fijo")

	clientColumn = Col(0, "Cliente", "cliente", "Name")
)

// Configuration parameter names, tried in order.
var (
	paramIndirect  = []string{"% Indirectos", "Indirectos"}
	paramLabor     = []string{"% Costo Laboral", "Costo Laboral"}
	paramOpex      = []string{"Gastos Operativos"}
	paramTargetPct = []string{"Margen Objetivo (%)"}
)

// Dataset is the reference data loaded from the sheets. It is read-only once
// loaded.
type Dataset struct {
	Catalog    []CatalogEntry `json:"catalog"`
	Clients    []string       `json:"clients"`
	Parameters *Concepts      `json:"parameters"`
	Baseline   *Concepts      `json:"baseline"`
}

// Coefficients returns the coefficients configured in the dataset.
func (d *Dataset) Coefficients() Coefficients {
	if d == nil {
		return DefaultCoefficients()
	}
	return CoefficientsFrom(d.Parameters)
}

// CatalogFromRecords maps catalog sheet rows into entries.
func CatalogFromRecords(records []Record) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, CatalogEntry{
			Category:             catalogCategoryColumn.String(r, "Otros"),
			Subtype:              catalogSubtypeColumn.String(r, "Default"),
			UnitSalePrice:        catalogPriceColumn.Number(r),
			SuggestedGrossSalary: catalogSalaryColumn.Number(r),
			FixedCost:            catalogFixedColumn.Number(r),
		})
	}
	return entries
}

// ClientsFromRecords lists the non-empty client names.
func ClientsFromRecords(records []Record) []string {
	var clients []string
	for _, r := range records {
		if c := clientColumn.String(r, ""); c != "" {
			clients = append(clients, c)
		}
	}
	return clients
}

// ParametersFromRecords maps the configuration sheet into parameters. Keys
// are trimmed and rows without a key are ignored.
func ParametersFromRecords(records []Record) *Concepts {
	params := new(Concepts)
	for _, r := range records {
		key := strings.TrimSpace(configKeyColumn.String(r, ""))
		if key == "" {
			continue
		}
		params.Set(key, configValueColumn.Number(r))
	}
	return params
}

// BaselineFromRecords maps the baseline income statement into concepts.
func BaselineFromRecords(records []Record) *Concepts {
	baseline := new(Concepts)
	for _, r := range records {
		concept, ok := baselineConceptColumn.Resolve(r)
		if !ok {
			continue
		}
		baseline.Set(strings.TrimSpace(concept), baselineAmountColumn.Number(r))
	}
	return baseline
}

// CoefficientsFrom reads the coefficients out of the configuration
// parameters, falling back to the defaults for missing ones.
func CoefficientsFrom(params *Concepts) Coefficients {
	return Coefficients{
		IndirectOverheadPct:      params.First(DefaultIndirectOverheadPct, paramIndirect...),
		LaborBurdenPct:           params.First(DefaultLaborBurdenPct, paramLabor...),
		OperatingExpenseOverride: params.First(DefaultOperatingExpenseOverride, paramOpex...),
		TargetMarginPct:          params.First(DefaultTargetMarginPct, paramTargetPct...),
	}
}

// Source provides the records of a named sheet.
type Source interface {
	Records(ctx context.Context, sheet string) ([]Record, error)
}

// LoadDataset reads the four sheets of a dataset from src.
func LoadDataset(ctx context.Context, src Source) (*Dataset, error) {
	read := func(sheet string) ([]Record, error) {
		records, err := src.Records(ctx, sheet)
		if err != nil {
			return nil, fmt.Errorf("loading sheet %q: %w", sheet, err)
		}
		return records, nil
	}

	catalog, err := read(SheetCatalog)
	if err != nil {
		return nil, err
	}
	clients, err := read(SheetClients)
	if err != nil {
		return nil, err
	}
	config, err := read(SheetConfig)
	if err != nil {
		return nil, err
	}
	baseline, err := read(SheetBaseline)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Catalog:    CatalogFromRecords(catalog),
		Clients:    ClientsFromRecords(clients),
		Parameters: ParametersFromRecords(config),
		Baseline:   BaselineFromRecords(baseline),
	}, nil
}
