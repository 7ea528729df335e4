package dremel

// nodeRef indexes a node inside an arena. The zero value refers to
// whichever node was inserted first (conventionally the root); noRef
// marks the absence of a node, e.g. "no parent".
type nodeRef int32

const noRef nodeRef = -1

// arena is a flat, parent-indexed tree: every node stores a numeric
// parent index into a shared slice instead of a pointer, so the tree has
// no reference cycles and nodes are never individually freed. Traversal
// functions are O(depth) because children are tracked alongside parents.
//
// Per the source's design notes, this replaces a pointer-based composite
// hierarchy with index arithmetic, matching how the teacher's schema
// graph avoids owning cycles between parent and child nodes.
type arena[T any] struct {
	payload  []T
	parent   []nodeRef
	children [][]nodeRef
}

// add appends a new node with the given parent and returns its ref. Pass
// noRef for the root.
func (a *arena[T]) add(parent nodeRef, value T) nodeRef {
	ref := nodeRef(len(a.payload))
	a.payload = append(a.payload, value)
	a.parent = append(a.parent, parent)
	a.children = append(a.children, nil)
	if parent != noRef {
		a.children[parent] = append(a.children[parent], ref)
	}
	return ref
}

func (a *arena[T]) len() int { return len(a.payload) }

func (a *arena[T]) at(ref nodeRef) *T { return &a.payload[ref] }

func (a *arena[T]) parentOf(ref nodeRef) nodeRef { return a.parent[ref] }

func (a *arena[T]) childrenOf(ref nodeRef) []nodeRef { return a.children[ref] }

func (a *arena[T]) isLeaf(ref nodeRef) bool { return len(a.children[ref]) == 0 }

// preorder visits ref and its descendants depth-first, visiting a node
// before its children and children in insertion order.
func (a *arena[T]) preorder(ref nodeRef, visit func(nodeRef)) {
	visit(ref)
	for _, child := range a.children[ref] {
		a.preorder(child, visit)
	}
}

// leaves returns the leaves reachable from ref, in pre-order.
func (a *arena[T]) leaves(ref nodeRef) []nodeRef {
	var out []nodeRef
	a.preorder(ref, func(n nodeRef) {
		if a.isLeaf(n) {
			out = append(out, n)
		}
	})
	return out
}

// pathToRoot returns ref and its ancestors up to and including the root,
// nearest first.
func (a *arena[T]) pathToRoot(ref nodeRef) []nodeRef {
	return a.pathTo(ref, noRef)
}

// pathTo returns the chain of nodes from ref up to but not including
// target, nearest first. If target is not an ancestor of ref (or noRef,
// meaning "the root"), the returned path reaches all the way to the
// root without error; callers that require target to be an ancestor
// should check the result against their own expectations.
func (a *arena[T]) pathTo(ref, target nodeRef) []nodeRef {
	var path []nodeRef
	for cur := ref; cur != target && cur != noRef; cur = a.parent[cur] {
		path = append(path, cur)
	}
	return path
}

// ancestorOf reports whether ancestor is ref itself or a strict ancestor
// of ref.
func (a *arena[T]) ancestorOf(ancestor, ref nodeRef) bool {
	for cur := ref; cur != noRef; cur = a.parent[cur] {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// lowestCommonAncestor returns the deepest node that is an ancestor of
// both x and y, or noRef if they do not share a root.
func (a *arena[T]) lowestCommonAncestor(x, y nodeRef) nodeRef {
	ancestors := make(map[nodeRef]struct{})
	for cur := x; cur != noRef; cur = a.parent[cur] {
		ancestors[cur] = struct{}{}
	}
	for cur := y; cur != noRef; cur = a.parent[cur] {
		if _, ok := ancestors[cur]; ok {
			return cur
		}
	}
	return noRef
}
