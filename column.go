package dremel

// Reader iterates one leaf column's stored triples in order. Per
// spec.md §4.4, a Reader is a cursor: done/value/repetition_level/
// definition_level describe the triple at the cursor, and next_r
// previews the repetition level that a following next() would land on
// without consuming it. Calling value/repetition_level/definition_level
// before the first next() is a programmer error (ReadBeforeFetch).
type Reader interface {
	// Node returns the leaf field this reader iterates.
	Node() FieldNode

	// Done reports whether the cursor has advanced past the last
	// triple.
	Done() bool

	// Next advances the cursor to the following triple. Once Done
	// reports true, further calls leave the cursor where it is.
	Next()

	// RepetitionLevel returns the repetition level of the triple at the
	// cursor.
	RepetitionLevel() int

	// DefinitionLevel returns the definition level of the triple at the
	// cursor.
	DefinitionLevel() int

	// Value returns the value of the triple at the cursor. It is the
	// null sentinel when DefinitionLevel() < Node().DefinitionLevel().
	Value() Value

	// NextRepetitionLevel previews the repetition level the cursor would
	// land on after the next call to Next, without consuming the
	// current triple. It returns 0 when the current triple is the last
	// one (mirroring the sentinel repetition level of a hypothetical
	// following record).
	NextRepetitionLevel() int
}

// Storage is the column store a shredded table lives in: one Reader per
// leaf field, freshly positioned before the first triple.
type Storage interface {
	// FieldGraph returns the schema the storage was built against.
	FieldGraph() *FieldGraph

	// ListFields returns the leaves with data in this storage, in
	// pre-order.
	ListFields() []FieldNode

	// CreateFieldReader returns a fresh Reader over path's column. It
	// fails with UnknownField if path does not name a stored leaf.
	CreateFieldReader(path string) (Reader, error)
}
