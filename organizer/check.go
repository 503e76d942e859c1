package organizer

import (
	"fmt"
	"strings"

	"github.com/dendrascience/dendra-file-organizer/tree"
)

// Check sweeps both structures and reports every inconsistency between them:
// files in the tree with no matching index entry, index entries whose folder
// does not hold the file, and counter mismatches. A nil result means the
// organizer is consistent.
func (o *Organizer) Check() []error {
	var problems []error

	treeFiles := 0
	for folder := range o.tree.Walk(o.tree.Root(), tree.PreOrder) {
		path := o.tree.Path(folder)
		for _, name := range o.tree.Files(folder) {
			treeFiles++
			want := path + "/" + name
			entry, ok := o.index.Search(name)
			switch {
			case !ok:
				problems = append(problems, fmt.Errorf("%s: no index entry", want))
			case entry.FullPath != want:
				problems = append(problems, fmt.Errorf("%s: index points to %s", want, entry.FullPath))
			case entry.Name != name:
				problems = append(problems, fmt.Errorf("%s: index stores the name as %q", want, entry.Name))
			}
		}
	}

	seen := make(map[string]string)
	indexed := 0
	for entry := range o.index.Entries() {
		indexed++
		key := strings.ToLower(entry.Name)
		if other, dup := seen[key]; dup {
			problems = append(problems, fmt.Errorf("%s: duplicate live entry (also %s)", entry.FullPath, other))
		}
		seen[key] = entry.FullPath

		folder, ok := o.folderOf(entry)
		switch {
		case !ok:
			problems = append(problems, fmt.Errorf("%s: folder does not exist", entry.FullPath))
		case !o.tree.HasFile(folder, entry.Name):
			problems = append(problems, fmt.Errorf("%s: folder does not hold %q", entry.FullPath, entry.Name))
		}
	}

	if live := o.index.Len(); live != indexed {
		problems = append(problems, fmt.Errorf("index reports %d live entries, found %d", live, indexed))
	}
	if indexed != treeFiles {
		problems = append(problems, fmt.Errorf("tree holds %d files, index %d", treeFiles, indexed))
	}
	return problems
}
