package tree

import (
	"slices"
	"strings"
)

// DefaultRootName names the root folder when none is given.
const DefaultRootName = "Root"

// NodeID is a stable handle to a folder in a Tree. Handles stay valid for the
// tree's lifetime since folders are never removed.
type NodeID int

// RootID is the handle of the root folder.
const RootID NodeID = 0

const noParent NodeID = -1

type node struct {
	name     string
	parent   NodeID
	children []NodeID
	byName   map[string]NodeID
	files    []string
	fileSet  map[string]struct{}
}

// Tree is a folder hierarchy stored as an arena of nodes. Each node keeps a
// non-owning handle to its parent and the ordered handles of its children.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
}

// New returns a tree holding only a root folder named rootName.
func New(rootName string) *Tree {
	if strings.TrimSpace(rootName) == "" {
		rootName = DefaultRootName
	}
	t := &Tree{}
	t.nodes = append(t.nodes, newNode(rootName, noParent))
	return t
}

func newNode(name string, parent NodeID) node {
	return node{
		name:    name,
		parent:  parent,
		byName:  make(map[string]NodeID),
		fileSet: make(map[string]struct{}),
	}
}

// Len returns the number of folders, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id refers to a folder of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Root returns the root folder handle.
func (t *Tree) Root() NodeID {
	return RootID
}

// Name returns a folder's own name.
func (t *Tree) Name(id NodeID) string {
	return t.nodes[id].name
}

// Parent returns a folder's parent; false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.nodes[id].parent
	return p, p != noParent
}

// Children returns a copy of a folder's child handles in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	return slices.Clone(t.nodes[id].children)
}

// Child returns the child of id with exactly the given name.
func (t *Tree) Child(id NodeID, name string) (NodeID, bool) {
	child, ok := t.nodes[id].byName[name]
	return child, ok
}

// Files returns a copy of a folder's filenames in insertion order.
func (t *Tree) Files(id NodeID) []string {
	return slices.Clone(t.nodes[id].files)
}

// HasFile reports exact-string membership of name in a folder.
func (t *Tree) HasFile(id NodeID, name string) bool {
	_, ok := t.nodes[id].fileSet[name]
	return ok
}

func segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CreateFolderPath walks path from the root, creating every missing folder, and
// returns the last one. Empty segments are skipped, so "" returns the root.
// Calling it again with the same path creates nothing and returns the same handle.
func (t *Tree) CreateFolderPath(path string) NodeID {
	current := RootID
	for _, part := range segments(path) {
		child, ok := t.nodes[current].byName[part]
		if !ok {
			child = t.addChild(current, part)
		}
		current = child
	}
	return current
}

func (t *Tree) addChild(parent NodeID, name string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(name, parent))
	p := &t.nodes[parent]
	p.children = append(p.children, id)
	p.byName[name] = id
	return id
}

// FindFolder resolves path from the root without creating anything.
func (t *Tree) FindFolder(path string) (NodeID, bool) {
	return t.FindFolderFrom(RootID, path)
}

// FindFolderFrom resolves path relative to from. An empty path, or a path equal
// to from's own name, resolves to from itself. The walk fails at the first
// segment with no matching child.
func (t *Tree) FindFolderFrom(from NodeID, path string) (NodeID, bool) {
	if !t.Valid(from) {
		return 0, false
	}
	if path == t.nodes[from].name {
		return from, true
	}
	return t.Descend(from, path)
}

// Descend walks path below from one child segment at a time. Unlike
// FindFolderFrom, a segment is always a child name, so a subfolder sharing
// from's name is reached rather than from itself. An empty path returns from.
func (t *Tree) Descend(from NodeID, path string) (NodeID, bool) {
	if !t.Valid(from) {
		return 0, false
	}
	current := from
	for _, part := range segments(path) {
		child, ok := t.nodes[current].byName[part]
		if !ok {
			return 0, false
		}
		current = child
	}
	return current, true
}

// AddFile adds name to a folder. It returns false when the folder already holds
// exactly that name.
func (t *Tree) AddFile(id NodeID, name string) bool {
	n := &t.nodes[id]
	if _, ok := n.fileSet[name]; ok {
		return false
	}
	n.fileSet[name] = struct{}{}
	n.files = append(n.files, name)
	return true
}

// RemoveFile removes name from a folder. It returns false when it is absent.
func (t *Tree) RemoveFile(id NodeID, name string) bool {
	n := &t.nodes[id]
	if _, ok := n.fileSet[name]; !ok {
		return false
	}
	delete(n.fileSet, name)
	if i := slices.Index(n.files, name); i >= 0 {
		n.files = slices.Delete(n.files, i, i+1)
	}
	return true
}

// Path returns the slash-joined names from the root down to id. It is rebuilt
// from the parent chain on every call.
func (t *Tree) Path(id NodeID) string {
	var names []string
	for current := id; current != noParent; current = t.nodes[current].parent {
		names = append(names, t.nodes[current].name)
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}

// RelativePath returns Path(id) without the root segment; "" for the root.
func (t *Tree) RelativePath(id NodeID) string {
	if id == RootID {
		return ""
	}
	_, rest, _ := strings.Cut(t.Path(id), "/")
	return rest
}
