package orgfs

import (
	"context"
	"errors"
	"os"
	"slices"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/organizer"
	"github.com/dendrascience/dendra-file-organizer/tree"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// FS exposes an Organizer as a FUSE filesystem. Every node call takes the
// single filesystem lock before touching the organizer.
type FS struct {
	org     *organizer.Organizer
	inodes  *util.InodeRegistry
	logger  *zap.Logger
	started time.Time
	mu      sync.Mutex // serializes all organizer access
}

// NewFS creates a filesystem view of org.
func NewFS(org *organizer.Organizer, logger *zap.Logger) *FS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{
		org:     org,
		inodes:  util.NewInodeRegistry(org.RootName()),
		logger:  logger.Named("fs"),
		started: time.Now(),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, id: tree.RootID}, nil
}

// fullPath returns the organizer path for a root-relative path.
func (f *FS) fullPath(rel string) string {
	if rel == "" {
		return f.org.RootName()
	}
	return f.org.RootName() + "/" + rel
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// errno maps organizer errors onto the errno a shell user expects.
func errno(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, util.ErrAlreadyExists):
		return syscall.EEXIST
	case errors.Is(err, util.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, util.ErrTableFull):
		return syscall.ENOSPC
	case errors.Is(err, util.ErrInvalidName):
		return syscall.EINVAL
	default:
		return syscall.EIO
	}
}

// Dir implements both Node and Handle for folders. id is the folder handle,
// which stays valid since folders are never removed; path is relative to the
// organizer root, "" for the root itself.
type Dir struct {
	fs   *FS
	id   tree.NodeID
	path string
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.fs.inodes.Inode(d.fs.fullPath(d.path))
	a.Mode = os.ModeDir | 0o755
	a.Mtime = d.fs.started
	a.Ctime = d.fs.started
	a.Atime = time.Now()
	return nil
}

func (d *Dir) listing() (organizer.Listing, error) {
	listing, err := d.fs.org.ListFolderAt(d.id)
	if err != nil {
		return organizer.Listing{}, errno(err)
	}
	return listing, nil
}

// Lookup resolves a folder or file name inside this folder
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	listing, err := d.listing()
	if err != nil {
		return nil, err
	}
	if child, ok := d.fs.org.Tree().Child(d.id, name); ok {
		return &Dir{fs: d.fs, id: child, path: join(d.path, name)}, nil
	}
	if slices.Contains(listing.Files, name) {
		return &File{fs: d.fs, dir: d.path, name: name}, nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists subfolders then files, each in insertion order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	listing, err := d.listing()
	if err != nil {
		return nil, err
	}
	dirents := make([]fuse.Dirent, 0, len(listing.Folders)+len(listing.Files))
	for _, name := range listing.Folders {
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes.Inode(d.fs.fullPath(join(d.path, name))),
			Name:  name,
			Type:  fuse.DT_Dir,
		})
	}
	for _, name := range listing.Files {
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes.Inode(d.fs.fullPath(join(d.path, name))),
			Name:  name,
			Type:  fuse.DT_File,
		})
	}
	return dirents, nil
}

// Mkdir creates a folder
func (d *Dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	if err := util.ValidateName(req.Name); err != nil {
		return nil, errno(err)
	}

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	path := join(d.path, req.Name)
	folder, err := d.fs.org.CreateFolder(path)
	if err != nil {
		d.fs.logger.Debug("mkdir failed", zap.String("path", path), zap.Error(err))
		return nil, errno(err)
	}
	d.fs.logger.Debug("mkdir", zap.String("path", folder.Path))
	return &Dir{fs: d.fs, id: folder.ID, path: path}, nil
}

// Create adds an empty file to this folder
func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	if err := util.ValidateName(req.Name); err != nil {
		return nil, nil, errno(err)
	}

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if _, err := d.fs.org.AddFile(req.Name, d.path); err != nil {
		d.fs.logger.Debug("create failed", zap.String("file", req.Name), zap.Error(err))
		return nil, nil, errno(err)
	}

	file := &File{fs: d.fs, dir: d.path, name: req.Name}
	file.fill(&resp.Attr)
	return file, file, nil
}

// Remove deletes a file. Folders cannot be removed.
func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	if req.Dir {
		return syscall.EPERM
	}

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	listing, err := d.listing()
	if err != nil {
		return err
	}
	// names are global in the index; only remove what this folder holds
	if !slices.Contains(listing.Files, req.Name) {
		return syscall.ENOENT
	}
	if _, err := d.fs.org.DeleteFile(req.Name); err != nil {
		return errno(err)
	}
	d.fs.inodes.Forget(d.fs.fullPath(join(d.path, req.Name)))
	d.fs.logger.Debug("remove",
		zap.String("file", req.Name),
		zap.String("folder", d.fs.fullPath(d.path)),
		zap.Int("inodes", d.fs.inodes.Len()))
	return nil
}

// File implements both Node and Handle for files. Files carry no content.
type File struct {
	fs   *FS
	dir  string
	name string
}

func (f *File) fill(a *fuse.Attr) {
	a.Inode = f.fs.inodes.Inode(f.fs.fullPath(join(f.dir, f.name)))
	a.Mode = 0o644
	a.Size = 0
	a.Mtime = f.fs.started
	a.Ctime = f.fs.started
	a.Atime = time.Now()
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.fill(a)
	return nil
}

// ReadAll returns the empty content every file has
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return []byte{}, nil
}

// Write rejects content; files are names only
func (f *File) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	return syscall.EPERM
}

// Setattr accepts timestamp updates and truncation to zero so touch and
// shell redirection of empty output work
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	if req.Valid.Size() && req.Size != 0 {
		return syscall.EPERM
	}
	f.fill(&resp.Attr)
	return nil
}
