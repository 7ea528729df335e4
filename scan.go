package dremel

import "github.com/rs/zerolog"

// Scanner is a pull-based cursor over a projection of a Storage's
// columns: each call to Next advances every reader whose following
// repetition level has caught up to the current fetch level, and
// refreshes exactly the output slots whose readers moved, implementing
// Dremel's fetch-level semantics (spec.md §4.5).
type Scanner struct {
	readers    []Reader
	fields     []FieldNode
	values     []Value
	fetchLevel int // fetch level to apply on the *next* call to Next
	resultLvl  int // fetch level the most recent Next call yielded
	done       bool
	log        zerolog.Logger
}

// Scan opens a projection scan over storage, restricted to the given
// leaf paths (relative to RootPath; every leaf if fields is empty). It
// fails with UnknownField if a path does not name a stored leaf, and
// with IndependentlyRepeated if the projection is ambiguous per
// FieldGraph.CheckIndependentlyRepeated.
func Scan(storage Storage, fields []string, options ...ScanOption) (*Scanner, error) {
	cfg := DefaultScanConfig()
	cfg.Apply(options...)

	graph := storage.FieldGraph()
	if len(fields) == 0 {
		for _, leaf := range storage.ListFields() {
			fields = append(fields, leaf.Path()[len(RootPath)+1:])
		}
	}

	paths := make([]string, len(fields))
	nodes := make([]FieldNode, len(fields))
	readers := make([]Reader, len(fields))
	for i, name := range fields {
		path := RootPath + "." + name
		node, ok := graph.GetField(path)
		if !ok || !node.IsLeaf() {
			return nil, newError(UnknownField, path, "projected field not found or not a leaf")
		}
		reader, err := storage.CreateFieldReader(path)
		if err != nil {
			return nil, err
		}
		paths[i] = path
		nodes[i] = node
		readers[i] = reader
	}

	if err := graph.CheckIndependentlyRepeated(paths); err != nil {
		return nil, err
	}

	return &Scanner{
		readers: readers,
		fields:  nodes,
		values:  make([]Value, len(fields)),
		log:     cfg.Log,
	}, nil
}

// Fields returns the projected leaves, in the order values are yielded.
func (s *Scanner) Fields() []FieldNode { return s.fields }

// Next advances the scan by one step, refreshing Values and FetchLevel.
// It returns false once every reader is exhausted; per invariant 7, a
// Scanner that has returned false keeps returning false.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	nextLevel := 0
	for _, r := range s.readers {
		if !r.Done() && r.NextRepetitionLevel() >= s.fetchLevel {
			r.Next()
			if lvl := r.NextRepetitionLevel(); lvl > nextLevel {
				nextLevel = lvl
			}
		}
	}

	allDone := true
	for _, r := range s.readers {
		if !r.Done() {
			allDone = false
			break
		}
	}
	if allDone {
		s.done = true
		return false
	}

	for i, r := range s.readers {
		if !r.Done() && r.RepetitionLevel() >= s.fetchLevel {
			s.values[i] = r.Value()
		}
	}

	s.resultLvl = s.fetchLevel
	s.fetchLevel = nextLevel
	s.log.Debug().Int("fetch_level", s.resultLvl).Msg("scan step")
	return true
}

// Values returns a copy of the tuple assembled by the most recent call
// to Next, one slot per projected field in Fields() order.
func (s *Scanner) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}

// FetchLevel returns the fetch level the most recent call to Next
// yielded at.
func (s *Scanner) FetchLevel() int { return s.resultLvl }
