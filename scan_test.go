package dremel

import (
	"errors"
	"testing"
)

func TestScanRejectsIndependentlyRepeatedProjection(t *testing.T) {
	graph := buildDocumentSchema()
	storage, err := shredInto(graph, &Document{
		DocID: 1,
		Links: &Links{Forward: []int64{1, 2}},
		Name:  []Name{{URL: strPtr("http://a")}},
	})
	if err != nil {
		t.Fatalf("shredInto: %v", err)
	}

	_, err = Scan(storage, []string{"links.forward", "name.url"})
	if !errors.Is(err, IndependentlyRepeated) {
		t.Fatalf("got %v, want IndependentlyRepeated for links.forward + name.url", err)
	}
}

func TestScanFetchLevelAndIdempotence(t *testing.T) {
	graph := buildDocumentSchema()
	storage, err := shredInto(graph, &Document{
		DocID: 1,
		Links: &Links{Forward: []int64{10, 20, 30}},
	}, "links.forward")
	if err != nil {
		t.Fatalf("shredInto: %v", err)
	}

	scanner, err := Scan(storage, []string{"links.forward"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var values []interface{}
	for scanner.Next() {
		values = append(values, scanner.Values()[0].Any())
	}
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3: %v", len(values), values)
	}
	for i, want := range []int64{10, 20, 30} {
		if values[i] != want {
			t.Errorf("value %d = %v, want %d", i, values[i], want)
		}
	}

	// Invariant 7: once exhausted, Next keeps reporting false.
	if scanner.Next() {
		t.Fatal("Next should return false once every reader is exhausted")
	}
}
