package depgraph

// TopoOrder returns the packages reachable from root in dependencies-first
// order: every package appears after all graph-present packages it depends
// on, with root last. Dependency names are resolved through the graph's
// version table; names whose resolved id is not a graph key (depth- or
// filter-truncated edges) are skipped.
//
// The traversal uses an explicit work stack, so arbitrarily deep chains
// cannot overflow the call stack. If the registry returned cyclic manifests
// the visited set keeps the traversal finite, but the order within the
// cyclic subgraph is not a valid topological sort; cycle breaking is out of
// scope.
func TopoOrder(g *Graph, root PackageID) []PackageID {
	if !g.Has(root) {
		return nil
	}

	type frame struct {
		id   PackageID
		deps []string
		next int
	}

	visited := map[PackageID]bool{root: true}
	stack := []frame{{id: root, deps: g.Deps(root)}}
	order := make([]PackageID, 0, g.Len())

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.deps) {
			dep := g.ResolveName(top.deps[top.next])
			top.next++
			if visited[dep] || !g.Has(dep) {
				continue
			}
			visited[dep] = true
			stack = append(stack, frame{id: dep, deps: g.Deps(dep)})
			continue
		}
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	return order
}

// Sources returns the packages no other graph entry depends on, in insertion
// order. For a freshly built graph this is the root; for a loaded snapshot it
// recovers the root without relying on key order.
func Sources(g *Graph) []PackageID {
	depended := make(map[PackageID]bool)
	for _, id := range g.IDs() {
		for _, name := range g.Deps(id) {
			depended[g.ResolveName(name)] = true
		}
	}
	var sources []PackageID
	for _, id := range g.IDs() {
		if !depended[id] {
			sources = append(sources, id)
		}
	}
	return sources
}

// ReverseIndex inverts the graph: for every package X it lists the packages
// whose manifests declare a dependency resolving to X. List order follows the
// forward graph's insertion order. The index is derived fresh on every call;
// it is never cached across builds.
func ReverseIndex(g *Graph) map[PackageID][]PackageID {
	idx := make(map[PackageID][]PackageID)
	for _, id := range g.IDs() {
		for _, name := range g.Deps(id) {
			target := g.ResolveName(name)
			idx[target] = append(idx[target], id)
		}
	}
	return idx
}
