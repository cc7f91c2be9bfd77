package circuit

import "github.com/sarchlab/relaysim/ident"

// Page owns its components, wires, and junctions and carries a name
// (spec §3.8). It is the scope within which wire-based connectivity is
// computed by the VNET builder.
type Page struct {
	ID   ident.ID
	Name string

	Components []Component
	Wires      []*Wire
	Junctions  []*Junction
}

// NewPage returns an empty, named Page.
func NewPage(id ident.ID, name string) *Page {
	return &Page{ID: id, Name: name}
}

// AddComponent appends c to the page.
func (p *Page) AddComponent(c Component) {
	p.Components = append(p.Components, c)
}

// AddWire appends w to the page.
func (p *Page) AddWire(w *Wire) {
	p.Wires = append(p.Wires, w)
}

// AddJunction appends j to the page.
func (p *Page) AddJunction(j *Junction) {
	p.Junctions = append(p.Junctions, j)
}

// Tabs returns every Tab belonging to every Component on the page (but
// not junction tabs, which the VNET builder folds in separately — a
// Junction has a tab but no owning Pin slice to enumerate it from).
func (p *Page) Tabs() []ident.ID {
	var out []ident.ID
	for _, c := range p.Components {
		for _, pin := range c.Pins() {
			out = append(out, pin.TabIDs...)
		}
	}
	return out
}

// PinForTab finds the Pin (component-owned or junction-owned) backing
// tabID on this page. Returns nil if the page has no such tab.
func (p *Page) PinForTab(tabID ident.ID) *Pin {
	for _, c := range p.Components {
		for _, pin := range c.Pins() {
			for _, t := range pin.TabIDs {
				if t == tabID {
					return pin
				}
			}
		}
	}
	for _, j := range p.Junctions {
		if j.TabID == tabID {
			return j.Pin
		}
	}
	return nil
}

// JunctionByID finds a junction by its identifier.
func (p *Page) JunctionByID(id ident.ID) *Junction {
	for _, j := range p.Junctions {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// ComponentByID finds a component by its identifier.
func (p *Page) ComponentByID(id ident.ID) Component {
	for _, c := range p.Components {
		if c.ID() == id {
			return c
		}
	}
	return nil
}
