package dremel

// MemoryStorage is a plain in-memory column store: each leaf's triples
// live in an ordinary slice, appended to directly by a Writer's Sink
// callback. It is the reference Storage implementation, grounded on the
// original's simple in-memory backend.
type MemoryStorage struct {
	graph   *FieldGraph
	columns map[string][]Triple
}

// NewMemoryStorage returns an empty MemoryStorage over graph.
func NewMemoryStorage(graph *FieldGraph) *MemoryStorage {
	return &MemoryStorage{graph: graph, columns: make(map[string][]Triple)}
}

// FieldGraph implements Storage.
func (s *MemoryStorage) FieldGraph() *FieldGraph { return s.graph }

// ListFields implements Storage, returning the leaves that have at
// least one stored triple, in schema pre-order.
func (s *MemoryStorage) ListFields() []FieldNode {
	var out []FieldNode
	for _, leaf := range s.graph.Leaves() {
		if _, ok := s.columns[leaf.Path()]; ok {
			out = append(out, leaf)
		}
	}
	return out
}

// CreateFieldReader implements Storage.
func (s *MemoryStorage) CreateFieldReader(path string) (Reader, error) {
	node, ok := s.graph.GetField(path)
	if !ok || !node.IsLeaf() {
		return nil, newError(UnknownField, path, "no such leaf field in storage")
	}
	triples, ok := s.columns[path]
	if !ok {
		return nil, newError(UnknownField, path, "field has no stored data")
	}
	return &memReader{node: node, triples: triples, pos: -1}, nil
}

// Emit implements Sink: a MemoryStorage can be passed directly to
// Writer.Write to append one record's worth of triples to each column
// it touches.
func (s *MemoryStorage) Emit(node FieldNode, r, d int, v Value) {
	s.columns[node.Path()] = append(s.columns[node.Path()], Triple{R: r, D: d, V: v})
}

// memReader walks one column's triples. pos starts at -1 (the original's
// READ_BEFORE_FETCH sentinel): the level/value accessors panic with a
// *Error of Kind ReadBeforeFetch until Next has been called at least
// once.
type memReader struct {
	node    FieldNode
	triples []Triple
	pos     int
}

func (r *memReader) Node() FieldNode { return r.node }

func (r *memReader) Done() bool { return r.pos >= len(r.triples) }

func (r *memReader) Next() {
	if !r.Done() {
		r.pos++
	}
}

func (r *memReader) current() Triple {
	if r.pos < 0 {
		panic(newError(ReadBeforeFetch, r.node.Path(), "column accessed before the first call to Next"))
	}
	return r.triples[r.pos]
}

func (r *memReader) RepetitionLevel() int { return r.current().R }

func (r *memReader) DefinitionLevel() int { return r.current().D }

func (r *memReader) Value() Value { return r.current().V }

func (r *memReader) NextRepetitionLevel() int {
	next := r.pos + 1
	if next >= len(r.triples) {
		return 0
	}
	return r.triples[next].R
}
