// Package gridastar provides budget-bounded A* pathfinding over dense 2D
// cost grids.
//
// It exposes three entry points:
//
//   - Search / FindPath: run a search to completion over a byte cost buffer.
//   - Stepper: advance the same search one expansion at a time to drive
//     visualizers or debugging tools.
//   - Planner: run a batch of independent searches against one cost buffer
//     with a bounded number of workers.
//
// Searches are single-threaded and deterministic: equal F-scores are broken by
// cell index. The frontier is a MinHeap that orders items through an external
// weight slice, which callers can reuse for their own scoring schemes.
//
// Grids and their dependency-chained bulk jobs live in package grid; the
// coordinate math and neighbor, line and spiral enumerators live in package
// geom.
package gridastar
