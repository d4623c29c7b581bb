package layout

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the box tree with positions for debugging. nodeName labels
// the originating node of each box and may be nil.
func (v *View) Dump(nodeName func(b *Box) string) string {
	tree := treeprint.NewWithRoot("view")
	if v.root != NoBox {
		v.dumpBox(tree, v.root, nodeName)
	}
	return tree.String()
}

func (v *View) dumpBox(branch treeprint.Tree, id BoxID, nodeName func(b *Box) string) {
	b := &v.boxes[id]
	var sb strings.Builder
	sb.WriteString(b.Kind.String())
	if b.Anonymous {
		sb.WriteString(" (anonymous)")
	} else if nodeName != nil {
		sb.WriteString(" " + nodeName(b))
	}
	fmt.Fprintf(&sb, " at (%g,%g) size %gx%g", b.Point.X, b.Point.Y, b.Size.Width, b.Size.Height)
	if b.Link != "" {
		fmt.Fprintf(&sb, " link=%q", b.Link)
	}

	if len(b.children) == 0 && len(b.Lines) == 0 {
		branch.AddNode(sb.String())
		return
	}
	sub := branch.AddBranch(sb.String())
	for _, f := range b.Lines {
		sub.AddNode(fmt.Sprintf("line %q at (%g,%g) size %gx%g", f.Text, f.X, f.Y, f.Width, f.Height))
	}
	for _, c := range b.children {
		v.dumpBox(sub, c, nodeName)
	}
}
