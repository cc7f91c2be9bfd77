// Package diag renders link-resolution/topology diagnostics and engine
// statistics as go-pretty tables (spec §6.6), the same library
// core.PrintState builds its register/buffer dumps with.
package diag

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/relaysim/engine"
	"github.com/sarchlab/relaysim/vnet"
)

// PrintTopologyWarnings renders the build-time diagnostics
// vnet.BuildManager collected (spec §7 TOPOLOGY_WARNING).
func PrintTopologyWarnings(w io.Writer, diags []vnet.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Topology Warnings")
	t.AppendHeader(table.Row{"#", "Message"})
	for i, d := range diags {
		t.AppendRow(table.Row{i + 1, d.Message})
	}
	t.Render()
}

// PrintLinkDiagnostics renders link-resolution counts and unresolved
// names (spec §6.6).
func PrintLinkDiagnostics(w io.Writer, diags vnet.Diagnostics) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Link Resolution")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Resolved", diags.Resolved})
	t.AppendRow(table.Row{"Cross-Page", diags.CrossPage})
	t.AppendRow(table.Row{"Same-Page", diags.SamePage})
	t.AppendRow(table.Row{"Single-Component Warnings", len(diags.SingleComponentWarnings)})
	t.AppendRow(table.Row{"Unresolved", len(diags.Unresolved)})
	t.Render()

	if len(diags.Unresolved) > 0 {
		fmt.Fprintf(w, "unresolved link name(s): %v\n", diags.Unresolved)
	}
	if len(diags.SingleComponentWarnings) > 0 {
		fmt.Fprintf(w, "link name(s) used by only one component: %v\n", diags.SingleComponentWarnings)
	}
}

// PrintStatistics renders a Run's final Statistics (spec §6.6).
func PrintStatistics(w io.Writer, stats engine.Statistics) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Simulation Statistics")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Final State", stats.FinalState.String()})
	t.AppendRow(table.Row{"Steps", stats.Steps})
	t.AppendRow(table.Row{"Total Iterations", stats.TotalIterations})
	t.AppendRow(table.Row{"Max Iterations In A Step", stats.MaxIterationsInAStep})
	t.AppendRow(table.Row{"Bridges Created", stats.BridgesCreated})
	t.AppendRow(table.Row{"Bridges Removed", stats.BridgesRemoved})
	t.AppendRow(table.Row{"Simulated Seconds", fmt.Sprintf("%.6f", stats.SimulatedSeconds)})
	t.Render()
}
