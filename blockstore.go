package dremel

import (
	"bytes"
	"encoding/gob"

	"github.com/google/uuid"

	"github.com/codefever/dremel-go/compress"
)

// block is one leaf column's triples, gob-encoded and then run through
// a compress.Codec, identified by a UUID the way the teacher's own
// block-oriented layer keys its compressed pages.
type block struct {
	id   uuid.UUID
	data []byte
}

// BlockStorage is a second Storage implementation that keeps each
// column as a single compressed block rather than a live Go slice. It
// must produce byte-identical triples to MemoryStorage for the same
// input; the compression is purely a storage-layer concern the core
// algorithms never observe.
type BlockStorage struct {
	graph   *FieldGraph
	codec   compress.Codec
	columns map[string]*block
}

// NewBlockStorage returns an empty BlockStorage over graph, compressing
// columns with codec.
func NewBlockStorage(graph *FieldGraph, codec compress.Codec) *BlockStorage {
	return &BlockStorage{graph: graph, codec: codec, columns: make(map[string]*block)}
}

// FieldGraph implements Storage.
func (s *BlockStorage) FieldGraph() *FieldGraph { return s.graph }

// ListFields implements Storage.
func (s *BlockStorage) ListFields() []FieldNode {
	var out []FieldNode
	for _, leaf := range s.graph.Leaves() {
		if _, ok := s.columns[leaf.Path()]; ok {
			out = append(out, leaf)
		}
	}
	return out
}

// CreateFieldReader implements Storage, decompressing path's block on
// every call: BlockStorage trades read-time CPU for a smaller resident
// footprint, the same trade a compressed page store makes.
func (s *BlockStorage) CreateFieldReader(path string) (Reader, error) {
	node, ok := s.graph.GetField(path)
	if !ok || !node.IsLeaf() {
		return nil, newError(UnknownField, path, "no such leaf field in storage")
	}
	blk, ok := s.columns[path]
	if !ok {
		return nil, newError(UnknownField, path, "field has no stored data")
	}

	raw, err := s.codec.Decode(nil, blk.data)
	if err != nil {
		return nil, newError(Internal, path, "decompressing block %s: %v", blk.id, err)
	}
	var triples []Triple
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&triples); err != nil {
		return nil, newError(Internal, path, "decoding block %s: %v", blk.id, err)
	}
	return &memReader{node: node, triples: triples, pos: -1}, nil
}

// Freeze compresses triples into a single block for node's column,
// replacing whatever was previously stored there. Typical use is to
// shred into a MemoryStorage first and then Freeze each of its columns
// into a BlockStorage, as blockstore_test.go does.
func (s *BlockStorage) Freeze(node FieldNode, triples []Triple) error {
	if !node.IsLeaf() {
		return newError(Internal, node.Path(), "only leaf columns can be frozen into a block")
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(triples); err != nil {
		return newError(Internal, node.Path(), "encoding triples: %v", err)
	}
	compressed, err := s.codec.Encode(nil, buf.Bytes())
	if err != nil {
		return newError(Internal, node.Path(), "compressing block: %v", err)
	}

	s.columns[node.Path()] = &block{id: uuid.New(), data: compressed}
	return nil
}

// FreezeFrom copies every column of src into dst, compressing each with
// dst's codec.
func FreezeFrom(dst *BlockStorage, src *MemoryStorage) error {
	for _, leaf := range src.ListFields() {
		triples := src.columns[leaf.Path()]
		if err := dst.Freeze(leaf, triples); err != nil {
			return err
		}
	}
	return nil
}
