package util

import (
	"sync"
)

// RootInode is the inode number reserved for the filesystem root.
const RootInode uint64 = 1

// InodeRegistry hands out stable inode numbers keyed by full path, so the same
// folder or file keeps its inode for the lifetime of a mount.
type InodeRegistry struct {
	mu      sync.Mutex
	highest uint64
	byPath  map[string]uint64
}

// NewInodeRegistry returns a registry with rootPath pinned to RootInode.
func NewInodeRegistry(rootPath string) *InodeRegistry {
	r := &InodeRegistry{
		highest: RootInode,
		byPath:  map[string]uint64{rootPath: RootInode},
	}
	return r
}

// Inode returns the inode for path, allocating the next free number on first use.
func (r *InodeRegistry) Inode(path string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inode, ok := r.byPath[path]; ok {
		return inode
	}
	r.highest++
	r.byPath[path] = r.highest
	return r.highest
}

// Forget drops the mapping for path. A later Inode call for the same path
// allocates a fresh number, as a recreated file would get on disk.
func (r *InodeRegistry) Forget(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inode, ok := r.byPath[path]; ok && inode != RootInode {
		delete(r.byPath, path)
	}
}

// Len returns the number of tracked paths, root included.
func (r *InodeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPath)
}
