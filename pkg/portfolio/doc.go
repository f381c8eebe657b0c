// Package portfolio defines the core data model for portfolio planning:
// teams with per-period capacity, scheduled work items with team
// allocations, and scenarios that bind both to a planning horizon.
//
// A Scenario is a complete proposed or current state of team capacities
// and scheduled work over a planning horizon. Capacity and demand are
// both accounted for in tokens, the unit of work used throughout the
// engine. Scenarios are treated as immutable snapshots by the
// constraint and governance layers; Clone produces the deep copies those
// layers project changes onto.
package portfolio
