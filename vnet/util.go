package vnet

import (
	"sort"

	"github.com/sarchlab/relaysim/ident"
)

func keys(m map[ident.ID]struct{}) []ident.ID {
	out := make([]ident.ID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedIDs(ids []ident.ID) []ident.ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortStrings(s []string) {
	sort.Strings(s)
}
