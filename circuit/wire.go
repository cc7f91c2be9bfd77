package circuit

import "github.com/sarchlab/relaysim/ident"

// Wire is an undirected edge whose endpoints are either a Tab or a
// Junction identifier, plus an ordered list of routing Waypoints (spec
// §3.7). EndID may be ident.Empty while the wire is mid-authoring; for
// simulation both endpoints must resolve or the wire is skipped with a
// TopologyWarning (spec §4.1 failure semantics).
type Wire struct {
	ID        ident.ID
	StartID   ident.ID // a Tab ID or a Junction ID
	EndID     ident.ID // a Tab ID or a Junction ID, or ident.Empty
	Waypoints []Waypoint
}

// Resolved reports whether both endpoints of the wire are present.
func (w *Wire) Resolved() bool {
	return w.StartID != ident.Empty && w.EndID != ident.Empty
}
