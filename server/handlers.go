package server

import (
	"net/http"

	"github.com/etnz/horizon"
	"github.com/gin-gonic/gin"
)

// coefficients defaults to the built-in coefficients when the request has
// none.
func coefficients(c *horizon.Coefficients) horizon.Coefficients {
	if c == nil {
		return horizon.DefaultCoefficients()
	}
	return *c
}

// ScenarioRequest is a single line to compute against a catalog.
type ScenarioRequest struct {
	Line         horizon.ScenarioLine   `json:"line"`
	Catalog      []horizon.CatalogEntry `json:"catalog"`
	Coefficients *horizon.Coefficients  `json:"coefficients"`
}

// ScenarioResponse is the line result, flagged when below the target margin.
type ScenarioResponse struct {
	horizon.ScenarioResult
	BelowTarget bool `json:"belowTarget"`
}

// Scenario computes one scenario line.
// POST /api/scenario
func (s *Server) Scenario(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	coef := coefficients(req.Coefficients)
	r := horizon.ComputeScenario(req.Line, req.Catalog, coef)
	c.JSON(http.StatusOK, ScenarioResponse{ScenarioResult: r, BelowTarget: horizon.BelowTarget(r, coef)})
}

// InputsRequest is a full set of projection inputs. Missing coefficients are
// the built-in ones.
type InputsRequest struct {
	horizon.Inputs
	Coefficients *horizon.Coefficients `json:"coefficients"`
}

func (r InputsRequest) inputs() horizon.Inputs {
	in := r.Inputs
	in.Coefficients = coefficients(r.Coefficients)
	return in
}

func bindInputs(c *gin.Context) (horizon.Inputs, bool) {
	var req InputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return horizon.Inputs{}, false
	}
	return req.inputs(), true
}

// PL computes the consolidated statement of the inputs.
// POST /api/pl
func (s *Server) PL(c *gin.Context) {
	in, ok := bindInputs(c)
	if !ok {
		return
	}
	results := horizon.ComputeScenarios(in.Lines, in.Catalog, in.Coefficients)
	c.JSON(http.StatusOK, horizon.Consolidate(in.Baseline, results, in.Coefficients.OperatingExpenseOverride))
}

// Projection computes everything the inputs give.
// POST /api/projection
func (s *Server) Projection(c *gin.Context) {
	in, ok := bindInputs(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, horizon.Project(in))
}

// Gauge measures a goal track.
// POST /api/gauge
func (s *Server) Gauge(c *gin.Context) {
	var track horizon.GoalTrack
	if err := c.ShouldBindJSON(&track); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, track.Gauge())
}
