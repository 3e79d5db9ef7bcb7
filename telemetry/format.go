package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/cdoc/output"
)

// slowOperation is the duration from which an operation is highlighted.
const slowOperation = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root:
//
//	render: 12ms
//	├─ load main.c: 1ms
//	│  └─ parser.parse main.c: 1ms (4 documents)
//	└─ formatter.format main.c: 0ms
func formatTimingTree(w io.Writer, root *timerNode) {
	styles := output.NewStyles(w)

	_, _ = fmt.Fprintf(w, "%s: %s%s\n", styles.Keyword(root.name), formatDuration(root.duration()), formatNote(root.note))

	for i, child := range root.children {
		formatNode(w, styles, child, "", i == len(root.children)-1)
	}
}

func formatNode(w io.Writer, styles *output.Styles, node *timerNode, prefix string, isLast bool) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	timing := styles.Dim(formatDuration(d))
	if d >= slowOperation {
		timing = styles.Warning(formatDuration(d))
	}

	_, _ = fmt.Fprintf(w, "%s%s: %s%s\n", styles.Dim(prefix+branch), node.name, timing, formatNote(node.note))

	for i, child := range node.children {
		formatNode(w, styles, child, prefix+extension, i == len(node.children)-1)
	}
}

// duration of an operation; timers never ended report zero.
func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

func formatNote(note string) string {
	if note == "" {
		return ""
	}
	return " (" + note + ")"
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
