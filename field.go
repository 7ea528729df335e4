package dremel

// RootPath is the sentinel path of the schema graph's root node. All
// other paths are dotted strings beginning with this sentinel, e.g.
// "__root__.name.language.code".
const RootPath = "__root__"

// Label is one of REQUIRED, OPTIONAL, REPEATED in the Dremel sense.
type Label int

const (
	Required Label = iota
	Optional
	Repeated
)

func (l Label) String() string {
	switch l {
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return "required"
	}
}

// FieldKind distinguishes inner (message/group) nodes from scalar
// leaves. The root is always treated as a group regardless of the kind
// recorded on its descriptor, per the source's design notes.
type FieldKind int

const (
	GroupOrMessage FieldKind = iota
	Scalar
)

// FieldDescriptor is the flat, user-supplied definition of one node of
// the schema graph. MaxRepetitionLevel and DefinitionLevel are intrinsic
// to the schema and supplied by the caller rather than computed here,
// matching the external interface in spec.md §6.
type FieldDescriptor struct {
	Path               string
	Kind               FieldKind
	Label              Label
	MaxRepetitionLevel int
	DefinitionLevel    int
}

type fieldPayload struct {
	desc       FieldDescriptor
	fieldIndex int // -1 for non-leaves
}

// FieldGraph is the schema tree built from a flat list of descriptors
// and an edge list from non-leaves to their ordered children. It is
// immutable after construction and may be shared across any number of
// concurrent shredders, scanners and assemblers.
type FieldGraph struct {
	arena  arena[fieldPayload]
	byPath map[string]nodeRef
	leaves []nodeRef // pre-order
	root   nodeRef
}

// FieldNode is a lightweight handle into a FieldGraph. The zero value is
// not valid; obtain FieldNodes from a FieldGraph's methods.
type FieldNode struct {
	graph *FieldGraph
	ref   nodeRef
}

func (n FieldNode) valid() bool { return n.graph != nil }

func (n FieldNode) payload() *fieldPayload { return n.graph.arena.at(n.ref) }

// Path returns the node's dotted path, beginning with RootPath.
func (n FieldNode) Path() string { return n.payload().desc.Path }

// Label returns the node's REQUIRED/OPTIONAL/REPEATED label.
func (n FieldNode) Label() Label { return n.payload().desc.Label }

// FieldKind returns whether the node is a scalar leaf or an inner group.
// The root always reports GroupOrMessage.
func (n FieldNode) FieldKind() FieldKind {
	if n.ref == n.graph.root {
		return GroupOrMessage
	}
	return n.payload().desc.Kind
}

// MaxRepetitionLevel returns R_max for this node.
func (n FieldNode) MaxRepetitionLevel() int { return n.payload().desc.MaxRepetitionLevel }

// DefinitionLevel returns D_max for this node.
func (n FieldNode) DefinitionLevel() int { return n.payload().desc.DefinitionLevel }

// FieldIndex returns the node's stable pre-order leaf index. It panics
// if called on a non-leaf; check IsLeaf first.
func (n FieldNode) FieldIndex() int {
	idx := n.payload().fieldIndex
	if idx < 0 {
		panic("dremel: FieldIndex called on a non-leaf field node: " + n.Path())
	}
	return idx
}

// IsLeaf reports whether the node is a scalar column.
func (n FieldNode) IsLeaf() bool { return n.graph.arena.isLeaf(n.ref) }

// IsRoot reports whether the node is the graph's root.
func (n FieldNode) IsRoot() bool { return n.ref == n.graph.root }

// Name returns the last path segment, e.g. "code" for
// "__root__.name.language.code".
func (n FieldNode) Name() string {
	path := n.Path()
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

// Parent returns the node's parent and true, or the zero FieldNode and
// false if called on the root.
func (n FieldNode) Parent() (FieldNode, bool) {
	p := n.graph.arena.parentOf(n.ref)
	if p == noRef {
		return FieldNode{}, false
	}
	return FieldNode{graph: n.graph, ref: p}, true
}

// Children returns the node's direct children in schema-declaration
// order.
func (n FieldNode) Children() []FieldNode {
	refs := n.graph.arena.childrenOf(n.ref)
	out := make([]FieldNode, len(refs))
	for i, r := range refs {
		out[i] = FieldNode{graph: n.graph, ref: r}
	}
	return out
}

func (n FieldNode) String() string { return n.Path() }

// Equal reports whether two handles refer to the same node of the same
// graph.
func (n FieldNode) Equal(o FieldNode) bool { return n.graph == o.graph && n.ref == o.ref }

// Root returns the graph's root node.
func (g *FieldGraph) Root() FieldNode { return FieldNode{graph: g, ref: g.root} }

// GetField looks a node up by its full dotted path, returning false if
// no such node exists.
func (g *FieldGraph) GetField(path string) (FieldNode, bool) {
	ref, ok := g.byPath[path]
	if !ok {
		return FieldNode{}, false
	}
	return FieldNode{graph: g, ref: ref}, true
}

// ListFields returns every node of the graph (inner and leaf), in
// pre-order.
func (g *FieldGraph) ListFields() []FieldNode {
	out := make([]FieldNode, 0, g.arena.len())
	g.arena.preorder(g.root, func(ref nodeRef) {
		out = append(out, FieldNode{graph: g, ref: ref})
	})
	return out
}

// Leaves returns the graph's leaves in pre-order; FieldNode.FieldIndex()
// is exactly this slice's index for each element.
func (g *FieldGraph) Leaves() []FieldNode {
	out := make([]FieldNode, len(g.leaves))
	for i, ref := range g.leaves {
		out[i] = FieldNode{graph: g, ref: ref}
	}
	return out
}

// LowestCommonAncestor returns the deepest node that is an ancestor of
// both a and b. It fails with SchemaMismatch if a and b belong to
// different graphs (and therefore share no root).
func (g *FieldGraph) LowestCommonAncestor(a, b FieldNode) (FieldNode, error) {
	if a.graph != g || b.graph != g {
		return FieldNode{}, newError(SchemaMismatch, "", "nodes belong to different field graphs")
	}
	ref := g.arena.lowestCommonAncestor(a.ref, b.ref)
	if ref == noRef {
		return FieldNode{}, newError(SchemaMismatch, "", "no common ancestor between %s and %s", a.Path(), b.Path())
	}
	return FieldNode{graph: g, ref: ref}, nil
}

// CommonRepetitionLevel returns R_max(LCA(a, b)).
func (g *FieldGraph) CommonRepetitionLevel(a, b FieldNode) (int, error) {
	lca, err := g.LowestCommonAncestor(a, b)
	if err != nil {
		return 0, err
	}
	return lca.MaxRepetitionLevel(), nil
}

// CheckIndependentlyRepeated guards a flat projection against the
// cartesian-product ambiguity identified in the Dremel paper: for each
// leaf path given, it climbs ancestors while the parent's
// MaxRepetitionLevel matches the leaf's, recording the ancestor reached
// at that repetition level. If two leaves share a repetition level but
// resolve to different ancestors, the projection is ambiguous.
func (g *FieldGraph) CheckIndependentlyRepeated(paths []string) error {
	type resolved struct {
		ancestor FieldNode
		path     string
	}
	levelToNode := make(map[int]resolved)

	for _, path := range paths {
		leaf, ok := g.GetField(path)
		if !ok {
			return newError(UnknownField, path, "no such field")
		}
		level := leaf.MaxRepetitionLevel()
		current := leaf
		for {
			parent, ok := current.Parent()
			if !ok || parent.MaxRepetitionLevel() != level {
				break
			}
			current = parent
		}
		if prev, ok := levelToNode[level]; ok && !prev.ancestor.Equal(current) {
			return newError(IndependentlyRepeated, path,
				"found independently-repeated fields: %s (from %s) and %s (from %s)",
				path, current.Path(), prev.path, prev.ancestor.Path())
		}
		levelToNode[level] = resolved{ancestor: current, path: path}
	}
	return nil
}

// BuildFieldGraph constructs a FieldGraph from a flat descriptor list and
// an edge map from non-leaf paths to their ordered child paths. The
// descriptor for RootPath must be present; it is always treated as the
// (implicit) root regardless of its recorded label/kind.
//
// Construction fails with SchemaBuild for a duplicate node, a missing
// descriptor, a leaf with outgoing edges, a non-leaf with none, or a
// recursive message definition (a path reachable from itself through
// edges).
func BuildFieldGraph(descriptors []FieldDescriptor, edges map[string][]string) (*FieldGraph, error) {
	byPath := make(map[string]FieldDescriptor, len(descriptors))
	for _, d := range descriptors {
		byPath[d.Path] = d
	}
	if _, ok := byPath[RootPath]; !ok {
		return nil, newError(SchemaBuild, RootPath, "missing descriptor for root")
	}

	g := &FieldGraph{byPath: make(map[string]nodeRef, len(descriptors))}
	seen := make(map[string]bool, len(descriptors))

	var create func(path string, parent nodeRef) (nodeRef, error)
	create = func(path string, parent nodeRef) (nodeRef, error) {
		if seen[path] {
			return noRef, newError(SchemaBuild, path, "duplicate node (or recursive message definition)")
		}
		seen[path] = true

		desc, ok := byPath[path]
		if !ok {
			return noRef, newError(SchemaBuild, path, "missing field descriptor")
		}

		children, hasEdges := edges[path]
		isLeaf := desc.Kind == Scalar && path != RootPath
		if isLeaf && hasEdges && len(children) > 0 {
			return noRef, newError(SchemaBuild, path, "leaf field has outgoing edges")
		}
		if !isLeaf && len(children) == 0 {
			return noRef, newError(SchemaBuild, path, "non-leaf field has no children")
		}

		ref := g.arena.add(parent, fieldPayload{desc: desc, fieldIndex: -1})
		g.byPath[path] = ref

		for _, child := range children {
			if _, err := create(child, ref); err != nil {
				return noRef, err
			}
		}
		return ref, nil
	}

	root, err := create(RootPath, noRef)
	if err != nil {
		return nil, err
	}
	g.root = root
	g.leaves = g.arena.leaves(root)
	for i, ref := range g.leaves {
		g.arena.at(ref).fieldIndex = i
	}
	return g, nil
}
