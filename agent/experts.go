package agent

import (
	"context"
	"fmt"

	"github.com/etnz/horizon"
	"github.com/etnz/horizon/docs"
	"github.com/etnz/horizon/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is planning next year's sales: he simulates scenario lines (a quantity of a
			catalog item sold to a client) on top of the company's baseline income statement, and
			follows commercial goals. Amounts are in Argentine pesos.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Answer in the language of the user.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist returns an expert grounded on Google Search, for the
// macroeconomic context of a projection.
func NewEconomist() *Expert {
	return &Expert{
		Name: "Economist",
		Description: `This is an economist specialized in Argentina.
		Very well aware of inflation, exchange rates, salary agreements and market prices.
		Ask the Economist whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an economist, you can search and find about anything related to
			the Argentine economy: inflation, exchange rates, salaries, IT services prices.
			You Leverage Google Search to ground your assertions in a solid truth.
				`}}},
		},
	}
}

// Projector returns the inputs of the projection currently simulated.
type Projector func(ctx context.Context) (horizon.Inputs, error)

// NewAnalyst returns the expert that reads the current projection.
func NewAnalyst(project Projector) *Expert {
	lib := AnalystFunctions(project)
	return &Expert{
		Name: "Analyst",
		Description: `This is the financial Analyst. He is in charge of reading the projected income statement,
		the simulated scenario lines and the commercial goals.
		He can explain every figure, how it is computed, and what drives margins.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a financial analyst in charge of the user's sales projection.
				You know how to use the Tools to extract relevant information about the projection.
				You are part of a team of experts, yours is everything about the projection. They might ask
				you questions about it, pardon their approximative language and figure out what they meant.

				Here is how the figures are computed:

				` + must(docs.GetTopic("coefficients")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// AnalystFunctions returns the functions the Analyst can call, each rendering a
// part of the current projection as markdown.
func AnalystFunctions(project Projector) []Function {
	render := func(name, description string, md func(horizon.Inputs, horizon.Projection) string) Function {
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name:        name,
				Description: description,
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown document.",
				},
			},
			Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				in, err := project(ctx)
				if err != nil {
					return errorResponse(id, name, fmt.Errorf("could not load the projection: %w", err))
				}
				return outputResponse(id, name, md(in, horizon.Project(in)))
			},
		}
	}

	return []Function{
		render("ProfitAndLoss",
			`ProfitAndLoss returns the projected income statement: each concept with its baseline,
			simulated and total amounts, the margins, and the proposal made of the simulated lines alone, per client.`,
			func(_ horizon.Inputs, p horizon.Projection) string {
				return renderer.PLMarkdown(p.PL) + "\n" + renderer.ProposalMarkdown(p.Proposal)
			}),
		render("Scenarios",
			`Scenarios returns the simulated scenario lines with their revenue, cost, result and margin,
			the lines below the target margin being flagged, and the coefficients in use.`,
			func(in horizon.Inputs, p horizon.Projection) string {
				return renderer.ScenariosMarkdown(in, p.Results) + "\n" + renderer.CoefficientsMarkdown(in.Coefficients)
			}),
		render("Gauges",
			`Gauges returns the commercial goals: target, achieved amount, gap, completion and the
			contributing entries per client.`,
			func(in horizon.Inputs, _ horizon.Projection) string {
				return renderer.GaugesMarkdown(in.Tracks)
			}),
		render("Catalog",
			`Catalog returns the priced items scenario lines can sell, by index.`,
			func(in horizon.Inputs, _ horizon.Projection) string {
				return renderer.CatalogMarkdown(in.Catalog)
			}),
	}
}
