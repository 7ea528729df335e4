package dremel

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives one (node, r, d, value) event per leaf occurrence, or
// non-occurrence, emitted while shredding a record. It is the
// callback the source's design notes call for: a single method rather
// than a language-specific visitor hierarchy.
type Sink interface {
	Emit(node FieldNode, r, d int, v Value)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(node FieldNode, r, d int, v Value)

// Emit satisfies the Sink interface.
func (f SinkFunc) Emit(node FieldNode, r, d int, v Value) { f(node, r, d, v) }

// levels tracks the (repetition, definition) pair inherited from a
// field's parent while shredding.
type levels struct {
	r, d int
}

// Writer ("the dissector") walks a Go record with reflect and emits
// leveled triples for a chosen subset of leaves. Per the design notes,
// there is a single dispatch function over Label/leaf-or-group rather
// than a FieldWriter/MessageWriter class split.
//
// Records are read through reflection using a "dremel" struct tag on
// each field (falling back to the Go field name): optional fields are
// represented as pointers (nil means absent), repeated fields as
// slices, and required fields as plain values.
type Writer struct {
	graph   *FieldGraph
	fields  []FieldNode // projected leaves, pre-order
	allowed map[nodeRef]bool
	log     zerolog.Logger
}

// NewWriter builds a Writer over graph, restricted to the leaf paths
// named by WithFields (relative to RootPath), or every leaf if none are
// given. Per spec.md §4.3, pruning only changes which leaves are
// visited: the R_max/D_max of surviving leaves are unchanged, since
// they are intrinsic to the schema rather than the projection.
func NewWriter(graph *FieldGraph, options ...WriterOption) (*Writer, error) {
	cfg := DefaultWriterConfig()
	cfg.Apply(options...)

	var leaves []FieldNode
	if cfg.Fields == nil {
		leaves = graph.Leaves()
	} else {
		requested := make(map[nodeRef]bool, len(cfg.Fields))
		for _, name := range cfg.Fields {
			path := RootPath + "." + name
			node, ok := graph.GetField(path)
			if !ok || !node.IsLeaf() {
				return nil, newError(UnknownField, path, "projected field not found or not a leaf")
			}
			requested[node.ref] = true
		}
		for _, leaf := range graph.Leaves() {
			if requested[leaf.ref] {
				leaves = append(leaves, leaf)
			}
		}
	}
	if len(leaves) == 0 {
		return nil, newError(SchemaBuild, "", "no valid leaf fields selected for writer")
	}

	allowed := make(map[nodeRef]bool)
	for _, leaf := range leaves {
		for _, ref := range graph.arena.pathToRoot(leaf.ref) {
			allowed[ref] = true
		}
	}

	return &Writer{graph: graph, fields: leaves, allowed: allowed, log: cfg.Log}, nil
}

// Fields returns the projected leaves this writer emits, in pre-order.
func (w *Writer) Fields() []FieldNode { return w.fields }

// Write shreds record (a struct, or pointer to one) into sink, emitting
// one event per projected leaf (or non-occurrence) as described in
// spec.md §4.3. It fails with InvalidRecord if a required field is
// missing.
func (w *Writer) Write(record interface{}, sink Sink) error {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return newError(InvalidRecord, "", "record must be a struct or pointer to a struct, got %s", v.Kind())
	}
	w.log.Debug().Str("root", v.Type().Name()).Msg("shredding record")
	return w.writePresent(w.graph.Root(), levels{0, 0}, v, sink)
}

// write dispatches on node's label, deciding presence for OPTIONAL and
// REQUIRED fields and fanning out REPEATED ones, per spec.md §4.3.
func (w *Writer) write(node FieldNode, lv levels, value reflect.Value, sink Sink) error {
	switch node.Label() {
	case Required:
		if !value.IsValid() || isNilPointer(value) {
			return newError(InvalidRecord, node.Path(), "missing required field")
		}
		return w.writePresent(node, lv, derefValue(value), sink)

	case Optional:
		if !value.IsValid() || isNilPointer(value) {
			w.emitAbsent(node, lv, sink)
			return nil
		}
		return w.writePresent(node, levels{lv.r, lv.d + 1}, derefValue(value), sink)

	default: // Repeated
		return w.writeRepeated(node, lv, value, sink)
	}
}

// writePresent describes a node already known to be present: for a
// leaf, the value itself; for a group, its active children.
func (w *Writer) writePresent(node FieldNode, lv levels, value reflect.Value, sink Sink) error {
	if node.IsLeaf() {
		sink.Emit(node, lv.r, lv.d, ValueOf(value.Interface()))
		return nil
	}
	for _, child := range w.activeChildren(node) {
		childValue, found := fieldByTag(value, child.Name())
		if !found {
			return newError(Internal, child.Path(), "no struct field tagged %q", child.Name())
		}
		if err := w.write(child, lv, childValue, sink); err != nil {
			return err
		}
	}
	return nil
}

// writeRepeated fans a slice value out into one occurrence per element,
// restarting r at node's own MaxRepetitionLevel for every element after
// the first, per spec.md §4.3.
func (w *Writer) writeRepeated(node FieldNode, lv levels, value reflect.Value, sink Sink) error {
	n := 0
	if value.IsValid() {
		if value.Kind() != reflect.Slice {
			return newError(InvalidRecord, node.Path(), "repeated field must be backed by a slice, got %s", value.Kind())
		}
		if !value.IsNil() {
			n = value.Len()
		}
	}
	if n == 0 {
		w.emitAbsent(node, lv, sink)
		return nil
	}

	r := lv.r
	for i := 0; i < n; i++ {
		if err := w.writePresent(node, levels{r, lv.d + 1}, value.Index(i), sink); err != nil {
			return err
		}
		r = node.MaxRepetitionLevel()
	}
	return nil
}

// emitAbsent records that node's subtree is absent at lv: a single NULL
// triple for node itself if it is a leaf, or one NULL triple at the
// same (r, d) for each of its projected descendant leaves otherwise.
func (w *Writer) emitAbsent(node FieldNode, lv levels, sink Sink) {
	if node.IsLeaf() {
		sink.Emit(node, lv.r, lv.d, Null())
		return
	}
	for _, leaf := range w.activeLeavesUnder(node) {
		sink.Emit(leaf, lv.r, lv.d, Null())
	}
}

func (w *Writer) activeChildren(node FieldNode) []FieldNode {
	children := node.Children()
	out := make([]FieldNode, 0, len(children))
	for _, c := range children {
		if w.allowed[c.ref] {
			out = append(out, c)
		}
	}
	return out
}

func (w *Writer) activeLeavesUnder(node FieldNode) []FieldNode {
	refs := w.graph.arena.leaves(node.ref)
	out := make([]FieldNode, 0, len(refs))
	for _, ref := range refs {
		if w.allowed[ref] {
			out = append(out, FieldNode{graph: w.graph, ref: ref})
		}
	}
	return out
}

var fieldTagCache sync.Map // reflect.Type -> map[string]int

func fieldIndexByTag(t reflect.Type) map[string]int {
	if cached, ok := fieldTagCache.Load(t); ok {
		return cached.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("dremel")
		if name == "" {
			name = field.Name
		}
		if name == "-" {
			continue
		}
		m[name] = i
	}
	fieldTagCache.Store(t, m)
	return m
}

func fieldByTag(structValue reflect.Value, name string) (reflect.Value, bool) {
	if structValue.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	idx, ok := fieldIndexByTag(structValue.Type())[name]
	if !ok {
		return reflect.Value{}, false
	}
	return structValue.Field(idx), true
}

func isNilPointer(v reflect.Value) bool {
	return v.IsValid() && v.Kind() == reflect.Ptr && v.IsNil()
}

func derefValue(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr {
		return v.Elem()
	}
	return v
}
