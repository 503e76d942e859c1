package util

import (
	"fmt"
	"sync"
	"testing"
)

func TestInodeRegistry_RootIsPinned(t *testing.T) {
	r := NewInodeRegistry("Root")

	if got := r.Inode("Root"); got != RootInode {
		t.Errorf("Root inode = %d, want %d", got, RootInode)
	}
	if got, ok := r.Path(RootInode); !ok || got != "Root" {
		t.Errorf("Path(RootInode) = %q, %v; want Root, true", got, ok)
	}
}

func TestInodeRegistry_StablePerPath(t *testing.T) {
	r := NewInodeRegistry("Root")

	first := r.Inode("Root/Documents")
	second := r.Inode("Root/Music")
	again := r.Inode("Root/Documents")

	if first == second {
		t.Errorf("Distinct paths share inode %d", first)
	}
	if again != first {
		t.Errorf("Repeated lookup returned %d, want %d", again, first)
	}
	if second != first+1 {
		t.Errorf("Second inode should be first+1: got %d, want %d", second, first+1)
	}
}

func TestInodeRegistry_Forget(t *testing.T) {
	r := NewInodeRegistry("Root")

	inode := r.Inode("Root/notes.txt")
	r.Forget("Root/notes.txt")

	if got := r.Len(); got != 1 {
		t.Errorf("Len() = %d after Forget, want 1 (root only)", got)
	}
	if fresh := r.Inode("Root/notes.txt"); fresh == inode {
		t.Errorf("Recreated path reused inode %d", inode)
	}

	// The root can never be forgotten
	r.Forget("Root")
	if got := r.Inode("Root"); got != RootInode {
		t.Errorf("Root inode changed to %d after Forget", got)
	}
}

func TestInodeRegistry_Concurrent(t *testing.T) {
	r := NewInodeRegistry("Root")

	var wg sync.WaitGroup
	numGoroutines := 100

	wg.Add(numGoroutines)
	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()
			r.Inode(fmt.Sprintf("Root/file%03d.txt", idx))
		}(i)
	}

	wg.Wait()

	// numGoroutines files plus the root
	if r.Len() != numGoroutines+1 {
		t.Errorf("Registry size = %d, want %d", r.Len(), numGoroutines+1)
	}

	seen := make(map[uint64]bool)
	for i := range numGoroutines {
		inode := r.Inode(fmt.Sprintf("Root/file%03d.txt", i))
		if seen[inode] {
			t.Errorf("Duplicate inode found: %d", inode)
		}
		seen[inode] = true
	}
}
