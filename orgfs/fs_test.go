package orgfs

import (
	"context"
	"fmt"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/dendra-file-organizer/organizer"
)

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.NodeMkdirer        = (*Dir)(nil)
	_ fs.NodeCreater        = (*Dir)(nil)
	_ fs.NodeRemover        = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
	_ fs.HandleWriter       = (*File)(nil)
	_ fs.NodeSetattrer      = (*File)(nil)
)

func newRoot(t *testing.T) (*FS, *Dir) {
	t.Helper()
	org := organizer.New()
	if err := org.LoadSample(); err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	filesys := NewFS(org, nil)
	node, err := filesys.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	return filesys, node.(*Dir)
}

func lookupDir(t *testing.T, d *Dir, name string) *Dir {
	t.Helper()
	node, err := d.Lookup(context.Background(), name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	dir, ok := node.(*Dir)
	if !ok {
		t.Fatalf("Lookup(%q) = %T, want *Dir", name, node)
	}
	return dir
}

func names(dirents []fuse.Dirent) []string {
	out := make([]string, 0, len(dirents))
	for _, de := range dirents {
		out = append(out, de.Name)
	}
	return out
}

func TestRootAttr(t *testing.T) {
	_, root := newRoot(t)
	var a fuse.Attr
	if err := root.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Inode != 1 {
		t.Errorf("root inode = %d, want 1", a.Inode)
	}
	if a.Mode != os.ModeDir|0o755 {
		t.Errorf("root mode = %v, want %v", a.Mode, os.ModeDir|0o755)
	}
}

func TestReadDirAll(t *testing.T) {
	_, root := newRoot(t)
	ctx := context.Background()

	dirents, err := root.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	got := fmt.Sprint(names(dirents))
	if got != "[Documents Pictures Music]" {
		t.Errorf("root entries = %s", got)
	}

	assignments := lookupDir(t, lookupDir(t, root, "Documents"), "Assignments")
	dirents, err = assignments.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if got := fmt.Sprint(names(dirents)); got != "[project.pdf homework.docx]" {
		t.Errorf("Assignments entries = %s", got)
	}
	for _, de := range dirents {
		if de.Type != fuse.DT_File {
			t.Errorf("%s type = %v, want DT_File", de.Name, de.Type)
		}
	}
}

func TestLookup(t *testing.T) {
	_, root := newRoot(t)
	ctx := context.Background()
	notes := lookupDir(t, lookupDir(t, root, "Documents"), "Notes")

	node, err := notes.Lookup(ctx, "notes.txt")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	file, ok := node.(*File)
	if !ok {
		t.Fatalf("Lookup = %T, want *File", node)
	}
	data, err := file.ReadAll(ctx)
	if err != nil || len(data) != 0 {
		t.Errorf("ReadAll = %q, %v; want empty", data, err)
	}

	if _, err := notes.Lookup(ctx, "NOTES.txt"); err != syscall.ENOENT {
		t.Errorf("Lookup of differently cased name = %v, want ENOENT", err)
	}
}

func TestStableInodes(t *testing.T) {
	_, root := newRoot(t)
	ctx := context.Background()
	docs := lookupDir(t, root, "Documents")

	var first, second fuse.Attr
	if err := docs.Attr(ctx, &first); err != nil {
		t.Fatal(err)
	}
	again := lookupDir(t, root, "Documents")
	if err := again.Attr(ctx, &second); err != nil {
		t.Fatal(err)
	}
	if first.Inode != second.Inode || first.Inode == 1 {
		t.Errorf("inodes = %d and %d, want equal and not root", first.Inode, second.Inode)
	}
}

func TestMkdirCreateRemove(t *testing.T) {
	filesys, root := newRoot(t)
	ctx := context.Background()

	node, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	work := node.(*Dir)

	resp := &fuse.CreateResponse{}
	_, _, err = work.Create(ctx, &fuse.CreateRequest{Name: "plan.md", Mode: 0o644}, resp)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Attr.Inode == 0 {
		t.Error("Create did not fill attributes")
	}
	if path, err := filesys.org.SearchFile("plan.md"); err != nil || path != "Root/Work/plan.md" {
		t.Errorf("SearchFile = %q, %v", path, err)
	}

	if err := root.Remove(ctx, &fuse.RemoveRequest{Name: "plan.md"}); err != syscall.ENOENT {
		t.Errorf("Remove from the wrong folder = %v, want ENOENT", err)
	}
	if err := work.Remove(ctx, &fuse.RemoveRequest{Name: "plan.md"}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := filesys.org.SearchFile("plan.md"); err == nil {
		t.Error("file still indexed after Remove")
	}
	if problems := filesys.org.Check(); len(problems) != 0 {
		t.Errorf("inconsistent after Remove: %v", problems)
	}

	if err := root.Remove(ctx, &fuse.RemoveRequest{Name: "Work", Dir: true}); err != syscall.EPERM {
		t.Errorf("rmdir = %v, want EPERM", err)
	}
}

func TestSubfolderNamedLikeRoot(t *testing.T) {
	filesys, root := newRoot(t)
	ctx := context.Background()

	node, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "Root", Mode: os.ModeDir | 0o755})
	if err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	sub := node.(*Dir)

	dirents, err := sub.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if len(dirents) != 0 {
		t.Fatalf("new folder lists %v, want nothing", names(dirents))
	}

	var resp fuse.CreateResponse
	if _, _, err := sub.Create(ctx, &fuse.CreateRequest{Name: "x.txt", Mode: 0o644}, &resp); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if path, err := filesys.org.SearchFile("x.txt"); err != nil || path != "Root/Root/x.txt" {
		t.Fatalf("SearchFile = %q, %v; want Root/Root/x.txt", path, err)
	}

	looked := lookupDir(t, root, "Root")
	dirents, err = looked.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if got := names(dirents); len(got) != 1 || got[0] != "x.txt" {
		t.Fatalf("Root/Root lists %v, want [x.txt]", got)
	}
	if _, err := looked.Lookup(ctx, "x.txt"); err != nil {
		t.Fatalf("Lookup(x.txt) failed: %v", err)
	}
	if _, err := root.Lookup(ctx, "x.txt"); err != syscall.ENOENT {
		t.Fatalf("root Lookup(x.txt) = %v, want ENOENT", err)
	}

	if err := looked.Remove(ctx, &fuse.RemoveRequest{Name: "x.txt"}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if problems := filesys.org.Check(); len(problems) != 0 {
		t.Fatalf("organizer inconsistent: %v", problems)
	}
	if got := filesys.org.Statistics().FileCount; got != 5 {
		t.Fatalf("FileCount = %d, want 5", got)
	}
}

func TestErrnoMapping(t *testing.T) {
	_, root := newRoot(t)
	ctx := context.Background()
	rock := lookupDir(t, lookupDir(t, root, "Music"), "Rock")

	tests := []struct {
		name string
		file string
		want error
	}{
		{"duplicate", "song1.mp3", syscall.EEXIST},
		{"duplicate elsewhere", "beach.jpg", syscall.EEXIST},
		{"invalid", "a:b", syscall.EINVAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := rock.Create(ctx, &fuse.CreateRequest{Name: tt.file}, &fuse.CreateResponse{})
			if err != tt.want {
				t.Errorf("Create(%q) = %v, want %v", tt.file, err, tt.want)
			}
		})
	}

	if _, err := rock.Mkdir(ctx, &fuse.MkdirRequest{Name: "  "}); err != syscall.EINVAL {
		t.Errorf("Mkdir blank = %v, want EINVAL", err)
	}
}

func TestCreateReportsTableFull(t *testing.T) {
	org := organizer.New()
	for i := range 10 {
		name := fmt.Sprintf("tmp%d", i)
		if _, err := org.AddFile(name, ""); err != nil {
			t.Fatal(err)
		}
		if _, err := org.DeleteFile(name); err != nil {
			t.Fatal(err)
		}
	}
	node, _ := NewFS(org, nil).Root()
	root := node.(*Dir)

	_, _, err := root.Create(context.Background(), &fuse.CreateRequest{Name: "full.txt"}, &fuse.CreateResponse{})
	if err != syscall.ENOSPC {
		t.Errorf("Create on a saturated index = %v, want ENOSPC", err)
	}
}

// TestSetattr verifies touch-style updates succeed and content cannot grow
func TestSetattr(t *testing.T) {
	_, root := newRoot(t)
	ctx := context.Background()
	node, err := lookupDir(t, lookupDir(t, root, "Pictures"), "Vacation").Lookup(ctx, "beach.jpg")
	if err != nil {
		t.Fatal(err)
	}
	f := node.(*File)

	done := make(chan error, 1)
	go func() {
		done <- f.Setattr(ctx, &fuse.SetattrRequest{Valid: fuse.SetattrMtime, Mtime: time.Now()}, &fuse.SetattrResponse{})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Setattr deadlocked - test timed out")
	}

	if err := f.Setattr(ctx, &fuse.SetattrRequest{Valid: fuse.SetattrSize, Size: 0}, &fuse.SetattrResponse{}); err != nil {
		t.Errorf("truncate to zero = %v, want nil", err)
	}
	if err := f.Setattr(ctx, &fuse.SetattrRequest{Valid: fuse.SetattrSize, Size: 10}, &fuse.SetattrResponse{}); err != syscall.EPERM {
		t.Errorf("grow = %v, want EPERM", err)
	}
	if err := f.Write(ctx, &fuse.WriteRequest{Data: []byte("x")}, &fuse.WriteResponse{}); err != syscall.EPERM {
		t.Errorf("Write = %v, want EPERM", err)
	}
}

// TestConcurrentCreate checks the filesystem lock keeps the organizer consistent
func TestConcurrentCreate(t *testing.T) {
	filesys, root := newRoot(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("c%02d.log", i)
			if _, _, err := root.Create(ctx, &fuse.CreateRequest{Name: name}, &fuse.CreateResponse{}); err != nil {
				t.Errorf("Create(%q) failed: %v", name, err)
			}
			_, _ = root.ReadDirAll(ctx)
		}()
	}
	wg.Wait()

	if problems := filesys.org.Check(); len(problems) != 0 {
		t.Errorf("inconsistent after concurrent creates: %v", problems)
	}
	if got := filesys.org.Statistics().FileCount; got != 21 {
		t.Errorf("file count = %d, want 21", got)
	}
}
