package inox2d

import (
	"fmt"
	"os"
)

// globalDebug enables extra consistency checks: disposed-node access panics,
// tree depth warnings, and grid shape verification on every axis edit and
// evaluation pass. Off by default; evaluation skips all checks in release
// mode.
var globalDebug bool

// SetDebugMode enables or disables debug mode.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called when debug mode is on.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("inox2d debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[inox2d] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckGridShape panics if any binding grid has drifted from its param's
// axis shape. Axis edits reshape all grids together, so a mismatch here is a
// programming error in this package, never normal operation.
func debugCheckGridShape(p *Param) {
	wantRows, wantCols := p.Rows(), p.Cols()
	for _, b := range p.bindings {
		rows, cols := b.shape()
		if rows != wantRows || cols != wantCols {
			panic(fmt.Sprintf("inox2d debug: param %q binding grid is %dx%d, axis points are %dx%d",
				p.Name, rows, cols, wantRows, wantCols))
		}
	}
}
