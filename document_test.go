package dremel

import "math/rand"

// Document, Links, Name and Language mirror the nested/repeated schema
// from the Dremel paper's running example, tagged for use with Writer
// and StructBuilder.
type Document struct {
	DocID int64   `dremel:"doc_id"`
	Links *Links  `dremel:"links"`
	Name  []Name  `dremel:"name"`
}

type Links struct {
	Backward []int64 `dremel:"backward"`
	Forward  []int64 `dremel:"forward"`
}

type Name struct {
	Language []Language `dremel:"language"`
	URL      *string    `dremel:"url"`
}

type Language struct {
	Code    string  `dremel:"code"`
	Country *string `dremel:"country"`
}

func strPtr(s string) *string { return &s }

// buildDocumentSchema constructs the FieldGraph for Document, with the
// R_max/D_max values the Dremel paper assigns to this exact shape.
func buildDocumentSchema() *FieldGraph {
	descriptors := []FieldDescriptor{
		{Path: RootPath, Kind: GroupOrMessage, Label: Required, MaxRepetitionLevel: 0, DefinitionLevel: 0},
		{Path: RootPath + ".doc_id", Kind: Scalar, Label: Required, MaxRepetitionLevel: 0, DefinitionLevel: 0},
		{Path: RootPath + ".links", Kind: GroupOrMessage, Label: Optional, MaxRepetitionLevel: 0, DefinitionLevel: 1},
		{Path: RootPath + ".links.backward", Kind: Scalar, Label: Repeated, MaxRepetitionLevel: 1, DefinitionLevel: 2},
		{Path: RootPath + ".links.forward", Kind: Scalar, Label: Repeated, MaxRepetitionLevel: 1, DefinitionLevel: 2},
		{Path: RootPath + ".name", Kind: GroupOrMessage, Label: Repeated, MaxRepetitionLevel: 1, DefinitionLevel: 1},
		{Path: RootPath + ".name.language", Kind: GroupOrMessage, Label: Repeated, MaxRepetitionLevel: 2, DefinitionLevel: 2},
		{Path: RootPath + ".name.language.code", Kind: Scalar, Label: Required, MaxRepetitionLevel: 2, DefinitionLevel: 2},
		{Path: RootPath + ".name.language.country", Kind: Scalar, Label: Optional, MaxRepetitionLevel: 2, DefinitionLevel: 3},
		{Path: RootPath + ".name.url", Kind: Scalar, Label: Optional, MaxRepetitionLevel: 1, DefinitionLevel: 2},
	}
	edges := map[string][]string{
		RootPath:                       {RootPath + ".doc_id", RootPath + ".links", RootPath + ".name"},
		RootPath + ".links":            {RootPath + ".links.backward", RootPath + ".links.forward"},
		RootPath + ".name":             {RootPath + ".name.language", RootPath + ".name.url"},
		RootPath + ".name.language":    {RootPath + ".name.language.code", RootPath + ".name.language.country"},
	}
	graph, err := BuildFieldGraph(descriptors, edges)
	if err != nil {
		panic(err)
	}
	return graph
}

func newDocument() interface{} { return &Document{} }

// createRandomDocument builds a Document with randomly-populated
// optional/repeated fields, for fuzz-style round-trip testing.
func createRandomDocument(rng *rand.Rand, docID int64) *Document {
	doc := &Document{DocID: docID}

	if rng.Intn(2) == 0 {
		links := &Links{}
		for i := 0; i < rng.Intn(3); i++ {
			links.Backward = append(links.Backward, rng.Int63n(1000))
		}
		for i := 0; i < rng.Intn(3); i++ {
			links.Forward = append(links.Forward, rng.Int63n(1000))
		}
		doc.Links = links
	}

	for i := 0; i < 1+rng.Intn(3); i++ {
		name := Name{}
		for j := 0; j < rng.Intn(3); j++ {
			lang := Language{Code: "lang-" + string(rune('a'+j))}
			if rng.Intn(2) == 0 {
				lang.Country = strPtr("country-" + string(rune('a'+j)))
			}
			name.Language = append(name.Language, lang)
		}
		if rng.Intn(2) == 0 {
			name.URL = strPtr("http://example.test/" + string(rune('a'+i)))
		}
		doc.Name = append(doc.Name, name)
	}

	return doc
}

// shredInto shreds doc into a fresh MemoryStorage over graph, optionally
// restricted to fields.
func shredInto(graph *FieldGraph, doc *Document, fields ...string) (*MemoryStorage, error) {
	var opts []WriterOption
	if len(fields) > 0 {
		opts = append(opts, WithFields(fields...))
	}
	w, err := NewWriter(graph, opts...)
	if err != nil {
		return nil, err
	}
	storage := NewMemoryStorage(graph)
	if err := w.Write(doc, storage); err != nil {
		return nil, err
	}
	return storage, nil
}

// assembleAll drives an Assembler to completion and returns every
// assembled *Document.
func assembleAll(storage Storage, fields ...string) ([]*Document, error) {
	var opts []AssembleOption
	if len(fields) > 0 {
		opts = append(opts, WithAssembleFields(fields...))
	}
	builder := NewStructBuilder(storage.FieldGraph(), newDocument)
	asm, err := NewAssembler(storage, builder, opts...)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for asm.Next() {
		docs = append(docs, builder.Built().(*Document))
	}
	return docs, nil
}
