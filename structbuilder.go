package dremel

import "reflect"

// frame is one level of the assembly stack: the schema node currently
// open, and the addressable Go struct value backing it.
type frame struct {
	node  FieldNode
	value reflect.Value
}

// StructBuilder is the reflect-based Builder grounded on the teacher's
// generic struct-tag record builder: it assembles records into plain Go
// structs tagged "dremel:name", the same convention Writer reads
// records through. newRecord is spec.md §6's "record factory": a
// zero-argument constructor returning a fresh pointer to an empty
// record matching the root schema.
type StructBuilder struct {
	graph     *FieldGraph
	newRecord func() interface{}

	record  reflect.Value // *T of the record under construction
	stack   []frame
	prev    FieldNode
	hasPrev bool

	built interface{}
}

// NewStructBuilder returns a StructBuilder over graph, constructing
// fresh records with newRecord.
func NewStructBuilder(graph *FieldGraph, newRecord func() interface{}) *StructBuilder {
	return &StructBuilder{graph: graph, newRecord: newRecord}
}

// Start implements Builder.
func (b *StructBuilder) Start() {
	ptr := reflect.ValueOf(b.newRecord())
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		panic(newError(Internal, "", "record factory must return a non-nil pointer"))
	}
	b.record = ptr
	b.stack = []frame{{node: b.graph.Root(), value: ptr.Elem()}}
	b.hasPrev = false
	b.built = nil
}

// Rollback implements Builder.
func (b *StructBuilder) Rollback() {
	b.stack = nil
	b.hasPrev = false
	b.built = nil
}

// Done implements Builder.
func (b *StructBuilder) Done() {
	if len(b.stack) == 0 {
		panic(newError(BuilderProtocol, "", "Done called without an open record"))
	}
	b.built = b.record.Interface()
	b.stack = nil
}

// Built returns the record completed by the most recent call to Done,
// or nil if none has completed since the last Start.
func (b *StructBuilder) Built() interface{} { return b.built }

// AssignValue implements Builder, following the rise/descend algorithm
// of spec.md §4.7: it rises the assembly stack to the lowest common
// ancestor of the incoming leaf and the currently open node (unwinding
// past any repeated ancestor that the FSM's backward leaf jump
// restarted), then descends from there, opening or reusing submessage
// slots until it reaches the leaf itself.
func (b *StructBuilder) AssignValue(fv FieldValue) {
	if len(b.stack) == 0 {
		panic(newError(BuilderProtocol, fv.Node.Path(), "AssignValue called outside Start/Done"))
	}

	current := fv.Node
	top := b.stack[len(b.stack)-1]

	barrier, err := b.graph.LowestCommonAncestor(current, top.node)
	if err != nil {
		panic(err)
	}

	if b.hasPrev && current.FieldIndex() <= b.prev.FieldIndex() {
		for !barrier.IsRoot() && barrier.MaxRepetitionLevel() >= fv.R {
			parent, ok := barrier.Parent()
			if !ok {
				break
			}
			barrier = parent
		}
	}

	for len(b.stack) > 0 && !b.stack[len(b.stack)-1].node.Equal(barrier) {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) == 0 {
		panic(newError(Internal, current.Path(), "assembly stack emptied without reaching the barrier node"))
	}

	refs := b.graph.arena.pathTo(current.ref, barrier.ref)
	path := make([]FieldNode, len(refs))
	for i, ref := range refs {
		path[len(refs)-1-i] = FieldNode{graph: b.graph, ref: ref}
	}

	for len(path) > 0 && path[0].DefinitionLevel() <= fv.D {
		node := path[0]
		path = path[1:]
		parentValue := b.stack[len(b.stack)-1].value

		if node.IsLeaf() {
			if !node.Equal(current) || len(path) != 0 {
				panic(newError(InvalidColumnStream, current.Path(), "leaf mismatch during assembly"))
			}
			assignLeafValue(parentValue, node, fv.Value)
		} else {
			child := openSubmessage(parentValue, node)
			b.stack = append(b.stack, frame{node: node, value: child})
		}
	}

	b.prev = current
	b.hasPrev = true
}

// assignLeafValue places v into the struct field tagged for node.name
// inside structValue, appending for REPEATED and setting for
// OPTIONAL/REQUIRED. A NULL value is never materialized.
func assignLeafValue(structValue reflect.Value, node FieldNode, v Value) {
	if v.IsNull() {
		return
	}
	field, ok := fieldByTag(structValue, node.Name())
	if !ok {
		panic(newError(Internal, node.Path(), "no struct field tagged %q", node.Name()))
	}

	switch node.Label() {
	case Repeated:
		elem := reflect.New(field.Type().Elem()).Elem()
		elem.Set(reflect.ValueOf(v.Any()).Convert(field.Type().Elem()))
		field.Set(reflect.Append(field, elem))
	case Optional:
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(reflect.ValueOf(v.Any()).Convert(field.Type().Elem()))
		field.Set(ptr)
	default: // Required
		field.Set(reflect.ValueOf(v.Any()).Convert(field.Type()))
	}
}

// openSubmessage returns the addressable struct value of node's
// submessage slot inside structValue, appending a new element for
// REPEATED or allocating-and-marking-present for OPTIONAL.
func openSubmessage(structValue reflect.Value, node FieldNode) reflect.Value {
	field, ok := fieldByTag(structValue, node.Name())
	if !ok {
		panic(newError(Internal, node.Path(), "no struct field tagged %q", node.Name()))
	}

	switch node.Label() {
	case Repeated:
		elemType := field.Type().Elem()
		if elemType.Kind() == reflect.Ptr {
			elem := reflect.New(elemType.Elem())
			field.Set(reflect.Append(field, elem))
			return elem.Elem()
		}
		field.Set(reflect.Append(field, reflect.New(elemType).Elem()))
		return field.Index(field.Len() - 1)

	case Optional:
		if field.Kind() != reflect.Ptr {
			panic(newError(Internal, node.Path(), "optional message field must be a pointer"))
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return field.Elem()

	default: // Required
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			return field.Elem()
		}
		return field
	}
}
