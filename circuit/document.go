package circuit

import "github.com/sarchlab/relaysim/ident"

// Document owns an ordered list of Pages, a metadata map, and the
// identifier registry (spec §3.9). It is the unit of persistence and
// the simulation input.
type Document struct {
	Version  string
	Metadata map[string]any
	Pages    []*Page
	Registry *ident.Registry
}

// NewDocument returns an empty document with a fresh registry.
func NewDocument(version string) *Document {
	return &Document{
		Version:  version,
		Metadata: make(map[string]any),
		Registry: ident.NewRegistry(),
	}
}

// AddPage appends a page, preserving document page order.
func (d *Document) AddPage(p *Page) {
	d.Pages = append(d.Pages, p)
}

// PageByID finds a page by its identifier.
func (d *Document) PageByID(id ident.ID) *Page {
	for _, p := range d.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AllComponents returns every component across every page, in page
// order then per-page insertion order — the deterministic base
// iteration order spec §4.8/§9 requires before any identifier sort is
// applied.
func (d *Document) AllComponents() []Component {
	var out []Component
	for _, p := range d.Pages {
		out = append(out, p.Components...)
	}
	return out
}
