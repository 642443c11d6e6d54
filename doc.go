// Package scheduler is the library surface over the indexed LP/simulation
// scheduling core: a mixed-radix variable schema (package schema), a
// flow-balance LP planner (package lp), a discrete-event intensity
// simulator (package sim), a genetic refiner over intensity fractions
// (package ga), and an orchestrator alternating the two (package
// orchestrator).
//
// Typical use loads a schema file and a data file, runs one of the three
// entry points below, and lets the result (or propagated error) drive an
// exit code:
//
//	quality, err := scheduler.Simulate("schema.json", "data.txt")
//	if err != nil {
//	        os.Exit(scheduler.ExitCodeFor(err))
//	}
//
// Subpackages:
//
//	schema/       — index bounds, variable declarations, mixed-radix row layout
//	store/        — keyed data store, defaulting/zeroing access paths, persistence
//	lp/           — flow-balance LP: equality matrix, bounds, objective, simplex
//	sim/          — per-tick discrete-event simulation of planned amounts
//	ga/           — genetic search over intensity-fraction allocations
//	orchestrator/ — alternates lp and ga over a scratch copy, commits the winner
package scheduler
