// Package horizon projects the profit and loss statement of a services company
// once simulated sales are added to its baseline statement.
//
// The reference data is a Dataset read from four sheets through a Source: the
// catalog of items for sale, the clients, the configuration parameters and
// the baseline statement. Cells are read leniently, see Number and
// NormalizeKey.
//
// The operator simulates sales as ScenarioLine values, and tracks the
// commercial plan as GoalTrack values, both kept in a Workspace. Project
// turns them into a Projection: the result of every line, the ConsolidatedPL
// statement, the Proposal by client and the gauge of every goal track.
// Calculations are pure and total: invalid inputs degrade to zero rather than
// fail.
//
// Snapshots of a projection are kept by the history package. This package
// serves as the foundational logic for the `horizon` command-line tool.
package horizon
