package vnet

import "github.com/sarchlab/relaysim/ident"

// unionFind is a path-compressed, union-by-rank disjoint-set over VNET
// identifiers, grouping them by bridge adjacency and shared-link
// adjacency each iteration (spec §4.5 step 2, §4.8 step b). Hand-rolled
// in the shape prim_kruskal.Kruskal inlines its own DSU in the example
// pack (parent/rank maps, path compression on Find, union by rank) —
// see DESIGN.md for why that package isn't imported directly.
type unionFind struct {
	parent map[ident.ID]ident.ID
	rank   map[ident.ID]int
}

func newUnionFind(ids []ident.ID) *unionFind {
	uf := &unionFind{
		parent: make(map[ident.ID]ident.ID, len(ids)),
		rank:   make(map[ident.ID]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(x ident.ID) ident.ID {
	root, ok := uf.parent[x]
	if !ok {
		uf.parent[x] = x
		return x
	}
	if root == x {
		return x
	}
	r := uf.find(root)
	uf.parent[x] = r
	return r
}

func (uf *unionFind) union(a, b ident.ID) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// groups returns the connected components as a map from (an arbitrary)
// representative id to its member ids, each sorted for determinism.
func (uf *unionFind) groups() map[ident.ID][]ident.ID {
	out := make(map[ident.ID][]ident.ID)
	var ids []ident.ID
	for id := range uf.parent {
		ids = append(ids, id)
	}
	ids = sortedIDs(ids)
	for _, id := range ids {
		root := uf.find(id)
		out[root] = append(out[root], id)
	}
	return out
}
