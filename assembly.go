package dremel

import "github.com/rs/zerolog"

// FieldValue is one triple handed to a Builder during assembly, labeled
// with the leaf it came from and the repetition level of the triple
// that will follow it, per spec.md §4.7.
type FieldValue struct {
	Node  FieldNode
	R     int
	D     int
	Value Value
	NextR int
}

// Builder is the record under construction, driven by an Assembler.
// Exactly one Assembler uses a given Builder at a time; its methods
// must be called in the sequence Start, zero or more AssignValue,
// then exactly one of Done or Rollback.
type Builder interface {
	// Start begins a new record.
	Start()
	// Rollback discards a partially-built record, called when the
	// underlying readers run out mid-assembly.
	Rollback()
	// Done finalizes the record started by the most recent Start.
	Done()
	// AssignValue places one triple's value into the record under
	// construction, per the rise/descend algorithm of spec.md §4.7.
	AssignValue(fv FieldValue)
}

// Assembler drives Builder with the triples of a projected column set,
// reconstructing one record per call to Next, per spec.md §4.7.
type Assembler struct {
	fsm     *FSM
	readers []Reader
	builder Builder
	log     zerolog.Logger
}

// NewAssembler opens readers over storage for the leaves named by
// WithAssembleFields (every stored leaf, if none are given), builds
// their FSM, and returns an Assembler that feeds builder.
func NewAssembler(storage Storage, builder Builder, options ...AssembleOption) (*Assembler, error) {
	cfg := DefaultAssembleConfig()
	cfg.Apply(options...)

	graph := storage.FieldGraph()

	var leaves []FieldNode
	if cfg.Fields == nil {
		leaves = storage.ListFields()
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
		return nil, newError(SchemaBuild, "", "no valid leaf fields selected for assembly")
	}

	fsm, err := BuildFSM(graph, leaves)
	if err != nil {
		return nil, err
	}

	readers := make([]Reader, len(leaves))
	for i, leaf := range leaves {
		r, err := storage.CreateFieldReader(leaf.Path())
		if err != nil {
			return nil, err
		}
		readers[i] = r
	}

	return &Assembler{fsm: fsm, readers: readers, builder: builder, log: cfg.Log}, nil
}

// Next reconstructs the next record into the builder passed to
// NewAssembler and reports whether one was produced. It returns false
// once the underlying readers are exhausted, having already called
// Rollback on the builder for the partial record that triggered that
// exhaustion.
func (a *Assembler) Next() bool {
	a.builder.Start()
	idx := 0
	for idx != a.fsm.EndLeaf() {
		reader := a.readers[idx]
		reader.Next()
		if reader.Done() {
			a.builder.Rollback()
			return false
		}
		a.builder.AssignValue(FieldValue{
			Node:  reader.Node(),
			R:     reader.RepetitionLevel(),
			D:     reader.DefinitionLevel(),
			Value: reader.Value(),
			NextR: reader.NextRepetitionLevel(),
		})
		idx = a.fsm.Next(idx, reader.NextRepetitionLevel())
	}
	a.builder.Done()
	a.log.Debug().Msg("assembled record")
	return true
}
