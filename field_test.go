package dremel

import (
	"errors"
	"testing"
)

func TestBuildFieldGraphLeafIndexStability(t *testing.T) {
	graph := buildDocumentSchema()

	want := []string{
		RootPath + ".doc_id",
		RootPath + ".links.backward",
		RootPath + ".links.forward",
		RootPath + ".name.language.code",
		RootPath + ".name.language.country",
		RootPath + ".name.url",
	}
	leaves := graph.Leaves()
	if len(leaves) != len(want) {
		t.Fatalf("got %d leaves, want %d", len(leaves), len(want))
	}
	for i, leaf := range leaves {
		if leaf.Path() != want[i] {
			t.Errorf("leaf %d: got %s, want %s", i, leaf.Path(), want[i])
		}
		if leaf.FieldIndex() != i {
			t.Errorf("leaf %d (%s): FieldIndex() = %d", i, leaf.Path(), leaf.FieldIndex())
		}
	}

	// Building the same schema a second time must assign identical
	// field indexes: they depend only on the schema, not on any record.
	again := buildDocumentSchema()
	for _, leaf := range want {
		a, _ := graph.GetField(leaf)
		b, _ := again.GetField(leaf)
		if a.FieldIndex() != b.FieldIndex() {
			t.Errorf("%s: field index differs across builds: %d vs %d", leaf, a.FieldIndex(), b.FieldIndex())
		}
	}
}

func TestBuildFieldGraphDuplicateNode(t *testing.T) {
	descriptors := []FieldDescriptor{
		{Path: RootPath, Kind: GroupOrMessage, Label: Required},
		{Path: RootPath + ".a", Kind: Scalar, Label: Required},
	}
	edges := map[string][]string{
		RootPath: {RootPath + ".a", RootPath + ".a"},
	}
	_, err := BuildFieldGraph(descriptors, edges)
	var derr *Error
	if !errors.As(err, &derr) || derr.Kind != SchemaBuild {
		t.Fatalf("got %v, want a SchemaBuild error", err)
	}
}

func TestBuildFieldGraphLeafWithChildren(t *testing.T) {
	descriptors := []FieldDescriptor{
		{Path: RootPath, Kind: GroupOrMessage, Label: Required},
		{Path: RootPath + ".a", Kind: Scalar, Label: Required},
		{Path: RootPath + ".a.b", Kind: Scalar, Label: Required},
	}
	edges := map[string][]string{
		RootPath:          {RootPath + ".a"},
		RootPath + ".a":    {RootPath + ".a.b"},
	}
	_, err := BuildFieldGraph(descriptors, edges)
	if !errors.Is(err, SchemaBuild) {
		t.Fatalf("got %v, want a SchemaBuild error", err)
	}
}

func TestCheckIndependentlyRepeated(t *testing.T) {
	graph := buildDocumentSchema()

	// code and country share a repeated parent (name.language), so reading
	// both is unambiguous.
	if err := graph.CheckIndependentlyRepeated([]string{
		RootPath + ".name.language.code",
		RootPath + ".name.language.country",
	}); err != nil {
		t.Fatalf("siblings under the same repeated parent should be fine: %v", err)
	}

	// forward and name.url both sit at R_max=1 but resolve to different
	// ancestors at that level (forward itself, since links is only
	// optional, vs name): ambiguous.
	err := graph.CheckIndependentlyRepeated([]string{
		RootPath + ".links.forward",
		RootPath + ".name.url",
	})
	if !errors.Is(err, IndependentlyRepeated) {
		t.Fatalf("got %v, want IndependentlyRepeated", err)
	}
}

func TestLowestCommonAncestorCrossGraph(t *testing.T) {
	a := buildDocumentSchema()
	b := buildDocumentSchema()
	na, _ := a.GetField(RootPath + ".doc_id")
	nb, _ := b.GetField(RootPath + ".doc_id")
	_, err := a.LowestCommonAncestor(na, nb)
	if !errors.Is(err, SchemaMismatch) {
		t.Fatalf("got %v, want SchemaMismatch", err)
	}
}
