package render

import (
	"strings"

	"github.com/dendrascience/dendra-file-organizer/tree"
)

// TreeOptions controls Tree output.
type TreeOptions struct {
	Color     bool // color folder names
	HideFiles bool // print folders only
	MaxDepth  int  // folder levels to expand below the start; 0 expands all
}

type treeLine struct {
	folder tree.NodeID
	file   string
	isFile bool
	prefix string
	last   bool
}

// Tree draws the hierarchy below id with box-drawing connectors. Within a
// folder, subfolders are listed before files, each in insertion order.
func Tree(t *tree.Tree, id tree.NodeID, opts TreeOptions) string {
	var b strings.Builder
	b.WriteString(paint(t.Name(id)+"/", FolderColor(t.Name(id)), opts.Color))
	b.WriteByte('\n')

	var stack []treeLine
	push := func(folder tree.NodeID, prefix string) {
		children := t.Children(folder)
		var files []string
		if !opts.HideFiles {
			files = t.Files(folder)
		}
		total := len(children) + len(files)
		// pushed in reverse so the first entry is popped first
		for i := len(files) - 1; i >= 0; i-- {
			stack = append(stack, treeLine{file: files[i], isFile: true, prefix: prefix, last: len(children)+i == total-1})
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, treeLine{folder: children[i], prefix: prefix, last: i == total-1})
		}
	}
	push(id, "")
	base := t.Depth(id)

	for len(stack) > 0 {
		line := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		connector, indent := "├── ", "│   "
		if line.last {
			connector, indent = "└── ", "    "
		}
		b.WriteString(line.prefix)
		b.WriteString(connector)
		if line.isFile {
			b.WriteString(line.file)
			b.WriteByte('\n')
			continue
		}
		name := t.Name(line.folder)
		b.WriteString(paint(name+"/", FolderColor(name), opts.Color))
		b.WriteByte('\n')
		if opts.MaxDepth <= 0 || t.Depth(line.folder)-base < opts.MaxDepth {
			push(line.folder, line.prefix+indent)
		}
	}
	return b.String()
}
