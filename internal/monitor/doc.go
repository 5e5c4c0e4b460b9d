// Package monitor implements the clustertop render loop and the render model
// shared by every output mode.
//
// The loop polls a cluster.StateProvider on a fixed cadence, aggregates the
// snapshot, and hands a complete Frame to a Renderer. Renderers never see
// raw telemetry: a Frame is a list of Panels made of styled Fragments, bars
// and sparklines, so the full-screen dashboard (package tui) and the plain
// text writer (package headless) draw the same content.
//
// # Key Components
//
//	Loop        - Initialize, Run and Tick; owns the grid and run context
//	Cadence     - Update interval and repaint rate derived from one setting
//	Grid        - Fixed preset of node slots, filled in source order
//	TrendBuffer - Ring buffer of recent CPU/memory averages for sparklines
//	Panels      - Header, summary, alerts, node and empty panel builders
//
// # Message Flow
//
//  1. The ticker fires every update interval
//  2. The source is fetched with the per-fetch timeout
//  3. cluster.Aggregate derives the summary, health tier and alerts
//  4. Nodes are placed into grid slots; overflow is reported, not drawn
//  5. The frame is rendered, or Stale is called if the fetch failed
//
// A failed tick never stops the loop. Cancelling the context is the only
// way out; Run then runs cleanup hooks within the shutdown timeout and
// returns nil.
package monitor
