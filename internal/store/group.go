package store

import "sort"

// GroupIndex is a derived mapping from a secondary key to the entities
// carrying it. It is never authoritative: the index holds whatever the last
// Rebuild saw and is considered stale after any repository mutation.
type GroupIndex[G comparable, T any] struct {
	groups map[G][]T
	keys   []G
	total  int
}

// NewGroupIndex constructs an empty GroupIndex.
func NewGroupIndex[G comparable, T any]() *GroupIndex[G, T] {
	return &GroupIndex[G, T]{groups: make(map[G][]T)}
}

// Rebuild discards the previous grouping and regroups the given snapshot.
// Entities are appended to their group in the order they appear, and group
// keys are remembered in first-encounter order, so rebuilding twice from
// the same snapshot yields identical groupings.
func (g *GroupIndex[G, T]) Rebuild(items []T, groupOf func(T) G) {
	g.groups = make(map[G][]T)
	g.keys = nil
	g.total = len(items)
	for _, item := range items {
		key := groupOf(item)
		if _, seen := g.groups[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.groups[key] = append(g.groups[key], item)
	}
}

// Lookup returns a copy of the group for key. An unknown key yields an
// empty slice, never an error.
func (g *GroupIndex[G, T]) Lookup(key G) []T {
	group := g.groups[key]
	out := make([]T, len(group))
	copy(out, group)
	return out
}

// LookupSorted returns the group for key ordered by less. The sort happens
// on the returned copy; the stored grouping keeps its rebuild order.
func (g *GroupIndex[G, T]) LookupSorted(key G, less func(a, b T) bool) []T {
	out := g.Lookup(key)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Groups returns the group keys in first-encounter order.
func (g *GroupIndex[G, T]) Groups() []G {
	out := make([]G, len(g.keys))
	copy(out, g.keys)
	return out
}

// Len reports the total number of entities across all groups.
func (g *GroupIndex[G, T]) Len() int {
	return g.total
}
