package circuit

import "github.com/sarchlab/relaysim/ident"

// Waypoint is a geometric vertex on a Wire's path (spec §3.6). It carries
// no electrical meaning; the solver ignores it entirely.
type Waypoint struct {
	ID       ident.ID
	Position Position
}
