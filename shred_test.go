package dremel

import (
	"errors"
	"reflect"
	"testing"
)

// TestWriterTwoDocuments hand-verifies the triples produced for two
// records shredded back to back, covering an absent optional group
// (doc1.links), a repeated leaf under a present optional group
// (doc2.links.backward/forward), a repeated group with every leaf
// present (doc1.name), and a repeated group whose nested repeated field
// is empty (doc2.name.language).
func TestWriterTwoDocuments(t *testing.T) {
	graph := buildDocumentSchema()

	doc1 := &Document{
		DocID: 10,
		Name: []Name{
			{
				Language: []Language{{Code: "en-us", Country: strPtr("us")}},
				URL:      strPtr("http://a"),
			},
		},
	}
	doc2 := &Document{
		DocID: 20,
		Links: &Links{Backward: []int64{10, 30}, Forward: []int64{80}},
		Name: []Name{
			{URL: strPtr("http://b")},
		},
	}

	w, err := NewWriter(graph)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	storage := NewMemoryStorage(graph)
	for _, doc := range []*Document{doc1, doc2} {
		if err := w.Write(doc, storage); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	cases := []struct {
		path string
		want []Triple
	}{
		{RootPath + ".doc_id", []Triple{
			{R: 0, D: 0, V: ValueOf(int64(10))},
			{R: 0, D: 0, V: ValueOf(int64(20))},
		}},
		{RootPath + ".links.backward", []Triple{
			{R: 0, D: 0, V: Null()},
			{R: 0, D: 2, V: ValueOf(int64(10))},
			{R: 1, D: 2, V: ValueOf(int64(30))},
		}},
		{RootPath + ".links.forward", []Triple{
			{R: 0, D: 0, V: Null()},
			{R: 0, D: 2, V: ValueOf(int64(80))},
		}},
		{RootPath + ".name.language.code", []Triple{
			{R: 0, D: 2, V: ValueOf("en-us")},
			{R: 0, D: 1, V: Null()},
		}},
		{RootPath + ".name.language.country", []Triple{
			{R: 0, D: 3, V: ValueOf("us")},
			{R: 0, D: 1, V: Null()},
		}},
		{RootPath + ".name.url", []Triple{
			{R: 0, D: 2, V: ValueOf("http://a")},
			{R: 0, D: 2, V: ValueOf("http://b")},
		}},
	}

	for _, c := range cases {
		reader, err := storage.CreateFieldReader(c.path)
		if err != nil {
			t.Fatalf("%s: CreateFieldReader: %v", c.path, err)
		}
		var got []Triple
		for !reader.Done() {
			reader.Next()
			if reader.Done() {
				break
			}
			got = append(got, Triple{R: reader.RepetitionLevel(), D: reader.DefinitionLevel(), V: reader.Value()})
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: got %+v, want %+v", c.path, got, c.want)
		}
	}
}

func TestWriterMissingRequiredField(t *testing.T) {
	graph := buildDocumentSchema()
	w, err := NewWriter(graph)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	type badDocument struct {
		DocID *int64 `dremel:"doc_id"`
	}
	var zero int64
	_ = zero

	doc := &badDocument{} // doc_id modeled as a nil pointer: required field missing
	err = w.Write(doc, SinkFunc(func(FieldNode, int, int, Value) {}))
	if err == nil {
		t.Fatal("expected an error for a missing required field")
	}
}

func TestWriterUnknownProjectedField(t *testing.T) {
	graph := buildDocumentSchema()
	_, err := NewWriter(graph, WithFields("no_such_field"))
	if !errors.Is(err, UnknownField) {
		t.Fatalf("got %v, want UnknownField", err)
	}
}
