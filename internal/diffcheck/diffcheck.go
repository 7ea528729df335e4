// Package diffcheck renders a unified diff between a test's expected
// and actual textual dumps, so a failing assertion shows exactly which
// lines disagree instead of two unreadable blobs.
package diffcheck

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff between want and got, or "" if they are
// equal. name labels the compared artifact in the diff header.
func Diff(name, want, got string) string {
	if want == got {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), want, got)
	unified := gotextdiff.ToUnified(name+".want", name+".got", want, edits)
	return fmt.Sprint(unified)
}
