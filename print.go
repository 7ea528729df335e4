package dremel

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Dump pretty-prints graph's nodes as a table: path, label, kind,
// R_max, D_max and field_index (for leaves). It is a debugging aid, not
// part of the core algorithms.
func Dump(w io.Writer, graph *FieldGraph) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"path", "label", "kind", "r_max", "d_max", "field_index"})
	for _, node := range graph.ListFields() {
		idx := "-"
		if node.IsLeaf() {
			idx = fmt.Sprint(node.FieldIndex())
		}
		kind := "group"
		if node.FieldKind() == Scalar {
			kind = "scalar"
		}
		table.Append([]string{
			node.Path(),
			node.Label().String(),
			kind,
			fmt.Sprint(node.MaxRepetitionLevel()),
			fmt.Sprint(node.DefinitionLevel()),
			idx,
		})
	}
	table.Render()
}

// DumpFSM pretty-prints fsm's transition table: one row per projected
// leaf, one column per repetition level from 0 to the largest R_max
// among the leaves.
func DumpFSM(w io.Writer, fsm *FSM) {
	leaves := fsm.Leaves()
	maxR := 0
	for _, leaf := range leaves {
		if leaf.MaxRepetitionLevel() > maxR {
			maxR = leaf.MaxRepetitionLevel()
		}
	}

	header := []string{"leaf"}
	for r := 0; r <= maxR; r++ {
		header = append(header, fmt.Sprintf("r=%d", r))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for i, leaf := range leaves {
		row := []string{leaf.Path()}
		for r := 0; r <= maxR; r++ {
			if r > leaf.MaxRepetitionLevel() {
				row = append(row, "")
				continue
			}
			next := fsm.Next(i, r)
			if next == fsm.EndLeaf() {
				row = append(row, "END")
			} else {
				row = append(row, leaves[next].Path())
			}
		}
		table.Append(row)
	}
	table.Render()
}
