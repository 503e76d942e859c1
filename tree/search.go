package tree

import (
	"iter"
	"strings"
)

// Match is a file found by SearchFiles together with the folder that holds it.
type Match struct {
	File       string `json:"file"`
	FolderPath string `json:"folder_path"`
}

// FullPath returns the folder path joined with the file name.
func (m Match) FullPath() string {
	return m.FolderPath + "/" + m.File
}

// SearchFiles yields files under id whose names contain pattern, compared
// case-insensitively. Folders are visited depth first, and a folder's own files
// come before those of its descendants. An empty pattern matches every file.
func (t *Tree) SearchFiles(id NodeID, pattern string) iter.Seq[Match] {
	needle := strings.ToLower(pattern)
	return func(yield func(Match) bool) {
		for folder := range t.walkPre(id) {
			files := t.nodes[folder].files
			if len(files) == 0 {
				continue
			}
			path := t.Path(folder)
			for _, name := range files {
				if !strings.Contains(strings.ToLower(name), needle) {
					continue
				}
				if !yield(Match{File: name, FolderPath: path}) {
					return
				}
			}
		}
	}
}

// Stats counts the folders and files of a subtree.
type Stats struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// Statistics counts the folders (including id itself) and files under id.
func (t *Tree) Statistics(id NodeID) Stats {
	var s Stats
	for folder := range t.walkPre(id) {
		s.Folders++
		s.Files += len(t.nodes[folder].files)
	}
	return s
}
