package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// TypeLink is the component_type discriminator for the link.
const TypeLink = "link"

// Link is a purely passive cross-page equivalence hint: it exposes one
// or more pins and a link_name, consumed by the link resolver, and never
// drives a pin itself (spec §4.7.7, and §9's resolved ambiguity: Link's
// apparent self-driving behavior in one debugging path is not part of
// its contract here).
type Link struct {
	base
}

// NewLink builds a Link with the given pins, all tied to linkName.
func NewLink(id ident.ID, pins []*circuit.Pin, linkName string) *Link {
	return &Link{base: newBase(id, TypeLink, pins, linkName)}
}

func (l *Link) SimStart(v circuit.VnetView, b circuit.BridgeView)       {}
func (l *Link) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {}
func (l *Link) SimStop()                                               {}
