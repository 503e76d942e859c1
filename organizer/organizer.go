package organizer

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/index"
	"github.com/dendrascience/dendra-file-organizer/tree"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// Operation names reported to a Recorder.
const (
	OpCreateFolder = "create_folder"
	OpAddFile      = "add_file"
	OpDeleteFile   = "delete_file"
	OpSearchFile   = "search_file"
	OpListFolder   = "list_folder"
	OpRehash       = "rehash"
)

// Recorder observes organizer activity, typically to export metrics.
type Recorder interface {
	ObserveOperation(op string, elapsed time.Duration, err error)
	ObserveIndex(stats index.Stats)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, time.Duration, error) {}
func (nopRecorder) ObserveIndex(index.Stats)                      {}

// Folder is a handle to a folder together with its full path.
type Folder struct {
	ID   tree.NodeID `json:"id"`
	Path string      `json:"path"`
}

// Listing is the immediate content of one folder.
type Listing struct {
	Path    string   `json:"path"`
	Folders []string `json:"folders"`
	Files   []string `json:"files"`
}

// Stats combines the folder tree and hash index counters.
type Stats struct {
	FolderCount    int     `json:"folder_count"`
	FileCount      int     `json:"file_count"`
	TableCapacity  int     `json:"table_capacity"`
	TableLiveCount int     `json:"table_live_count"`
	LoadFactor     float64 `json:"load_factor"`
	CollisionCount int     `json:"collision_count"`
	Tombstones     int     `json:"tombstones"`
	Rehashes       int     `json:"rehashes"`
}

// Organizer keeps a folder tree and a filename index mutually consistent.
// The tree is authoritative for membership; the index maps each filename to
// the full path of the folder entry holding it. Every mutating operation either
// updates both structures or leaves both as they were.
//
// An Organizer is not safe for concurrent use; callers serialize access.
type Organizer struct {
	tree     *tree.Tree
	index    *index.Index
	logger   *zap.Logger
	recorder Recorder
}

// Option configures an Organizer.
type Option func(*settings)

type settings struct {
	rootName  string
	indexOpts index.Options
	logger    *zap.Logger
	recorder  Recorder
}

// WithRootName names the root folder. A name util.ValidateName rejects falls
// back to tree.DefaultRootName, since stored paths are split on slashes.
func WithRootName(name string) Option {
	return func(s *settings) { s.rootName = name }
}

// WithIndexOptions sets the hash index configuration.
func WithIndexOptions(opts index.Options) Option {
	return func(s *settings) { s.indexOpts = opts }
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder attaches a Recorder.
func WithRecorder(r Recorder) Option {
	return func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New returns an empty organizer.
func New(opts ...Option) *Organizer {
	s := settings{
		rootName:  tree.DefaultRootName,
		indexOpts: index.DefaultOptions(),
		logger:    zap.NewNop(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := util.ValidateName(s.rootName); err != nil {
		s.logger.Warn("invalid root name, using default",
			zap.String("root_name", s.rootName),
			zap.String("default", tree.DefaultRootName),
			zap.Error(err))
		s.rootName = tree.DefaultRootName
	}

	o := &Organizer{
		tree:     tree.New(s.rootName),
		index:    index.New(s.indexOpts),
		logger:   s.logger.Named("organizer"),
		recorder: s.recorder,
	}
	o.recorder.ObserveIndex(o.index.Stats())
	return o
}

// Tree gives read access to the folder tree. Callers must not mutate it.
func (o *Organizer) Tree() *tree.Tree {
	return o.tree
}

// RootName returns the name of the root folder.
func (o *Organizer) RootName() string {
	return o.tree.Name(o.tree.Root())
}

func (o *Organizer) observe(op string, start time.Time, err error) {
	o.recorder.ObserveOperation(op, time.Since(start), err)
}

// CreateFolder creates every missing folder along path and returns the last
// one. It is idempotent. Segments that are only whitespace are rejected.
func (o *Organizer) CreateFolder(path string) (f Folder, err error) {
	start := time.Now()
	defer func() { o.observe(OpCreateFolder, start, err) }()

	return o.createFolder(path)
}

// createFolder is CreateFolder without the operation record, so AddFile
// reports a single operation.
func (o *Organizer) createFolder(path string) (Folder, error) {
	for _, segment := range strings.Split(path, "/") {
		if segment != "" && strings.TrimSpace(segment) == "" {
			return Folder{}, fmt.Errorf("create folder %q: blank segment: %w", path, util.ErrInvalidName)
		}
	}

	before := o.tree.Len()
	id := o.tree.CreateFolderPath(path)
	f := Folder{ID: id, Path: o.tree.Path(id)}
	if created := o.tree.Len() - before; created > 0 {
		o.logger.Debug("create folder", zap.String("path", f.Path), zap.Int("created", created))
	}
	return f, nil
}

// AddFile adds filename to the folder at folderPath, creating the folder if
// needed, and indexes it. An empty folderPath means the root.
//
// Filenames are unique across the organizer, compared case-insensitively: a
// name already indexed anywhere fails with util.ErrAlreadyExists and nothing
// changes. When the index cannot place the entry the tree change is undone and
// the returned error wraps util.ErrTableFull.
func (o *Organizer) AddFile(filename, folderPath string) (msg string, err error) {
	start := time.Now()
	defer func() { o.observe(OpAddFile, start, err) }()

	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("add file: filename cannot be empty: %w", util.ErrInvalidName)
	}

	folder, err := o.createFolder(folderPath)
	if err != nil {
		return "", fmt.Errorf("add file %q: %w", filename, err)
	}

	if existing, ok := o.index.Search(filename); ok {
		return "", fmt.Errorf("add file %q: %q already indexed at %s: %w",
			filename, existing.Name, existing.FullPath, util.ErrAlreadyExists)
	}

	if !o.tree.AddFile(folder.ID, filename) {
		return "", fmt.Errorf("add file %q: already in %s: %w", filename, folder.Path, util.ErrAlreadyExists)
	}

	fullPath := folder.Path + "/" + filename
	capacity := o.index.Capacity()
	if err := o.index.Insert(filename, fullPath); err != nil {
		o.tree.RemoveFile(folder.ID, filename)
		o.logger.Warn("index insert failed, rolled back folder entry",
			zap.String("file", filename),
			zap.String("folder", folder.Path),
			zap.Error(err))
		o.recorder.ObserveIndex(o.index.Stats())
		return "", fmt.Errorf("add file %q: %w", filename, err)
	}
	o.noteGrowth(capacity)

	o.logger.Debug("add file", zap.String("file", filename), zap.String("path", fullPath))
	return fmt.Sprintf("Added '%s' to %s", filename, folder.Path), nil
}

// noteGrowth logs and records a capacity change since capacity was sampled.
func (o *Organizer) noteGrowth(capacity int) {
	stats := o.index.Stats()
	if stats.Capacity != capacity {
		o.logger.Info("index grew",
			zap.Int("from", capacity),
			zap.Int("to", stats.Capacity),
			zap.Int("live", stats.Live),
			zap.Int("collisions", stats.Collisions))
	}
	o.recorder.ObserveIndex(stats)
}

// folderOf resolves the folder holding an indexed entry. The full path is
// always the folder path, a slash and the stored name, so the folder segments
// are walked child by child below the root.
func (o *Organizer) folderOf(entry index.Entry) (tree.NodeID, bool) {
	dir, ok := strings.CutSuffix(entry.FullPath, "/"+entry.Name)
	if !ok {
		return 0, false
	}
	first, rest, _ := strings.Cut(dir, "/")
	if first != o.RootName() {
		return 0, false
	}
	return o.tree.Descend(o.tree.Root(), rest)
}

// DeleteFile removes filename, matched case-insensitively, from both its folder
// and the index. The folder entry removed is the name as it was stored.
func (o *Organizer) DeleteFile(filename string) (msg string, err error) {
	start := time.Now()
	defer func() { o.observe(OpDeleteFile, start, err) }()

	entry, ok := o.index.Search(filename)
	if !ok {
		return "", fmt.Errorf("delete file %q: %w", filename, util.ErrNotFound)
	}

	folder, ok := o.folderOf(entry)
	if !ok {
		return "", fmt.Errorf("delete file %q: folder of %s: %w", filename, entry.FullPath, util.ErrNotFound)
	}
	if !o.tree.RemoveFile(folder, entry.Name) {
		return "", fmt.Errorf("delete file %q: not in %s: %w", filename, o.tree.Path(folder), util.ErrNotFound)
	}
	if !o.index.Delete(entry.Name) {
		o.tree.AddFile(folder, entry.Name)
		o.logger.Warn("index delete failed, restored folder entry", zap.String("file", entry.Name))
		return "", fmt.Errorf("delete file %q: index entry vanished: %w", filename, util.ErrNotFound)
	}
	o.recorder.ObserveIndex(o.index.Stats())

	o.logger.Debug("delete file", zap.String("file", entry.Name), zap.String("path", entry.FullPath))
	return fmt.Sprintf("Deleted '%s'", entry.Name), nil
}

// SearchFile looks filename up in the index and returns its full path.
func (o *Organizer) SearchFile(filename string) (path string, err error) {
	start := time.Now()
	defer func() { o.observe(OpSearchFile, start, err) }()

	entry, ok := o.index.Search(filename)
	if !ok {
		return "", fmt.Errorf("search %q: %w", filename, util.ErrNotFound)
	}
	return entry.FullPath, nil
}

// FoundMessage formats a successful SearchFile result.
func FoundMessage(filename, path string) string {
	return fmt.Sprintf("Found: %s at %s", filename, path)
}

// ListFolder returns the subfolders and files of the folder at path, both in
// insertion order. An empty path lists the root.
func (o *Organizer) ListFolder(path string) (l Listing, err error) {
	start := time.Now()
	defer func() { o.observe(OpListFolder, start, err) }()

	id, ok := o.tree.FindFolder(path)
	if !ok {
		return Listing{}, fmt.Errorf("list %q: %w", path, util.ErrNotFound)
	}
	return o.listing(id), nil
}

// ListFolderAt lists the folder with the given handle. Front ends that hold a
// handle use it instead of a path, which would resolve a subfolder named like
// the root to the root itself.
func (o *Organizer) ListFolderAt(id tree.NodeID) (l Listing, err error) {
	start := time.Now()
	defer func() { o.observe(OpListFolder, start, err) }()

	if !o.tree.Valid(id) {
		return Listing{}, fmt.Errorf("list folder %d: %w", id, util.ErrNotFound)
	}
	return o.listing(id), nil
}

func (o *Organizer) listing(id tree.NodeID) Listing {
	l := Listing{Path: o.tree.Path(id), Files: o.tree.Files(id)}
	for _, child := range o.tree.Children(id) {
		l.Folders = append(l.Folders, o.tree.Name(child))
	}
	return l
}

// Traverse yields the full path of every folder in the given order.
func (o *Organizer) Traverse(order tree.Order) iter.Seq[string] {
	return o.tree.Paths(o.tree.Root(), order)
}

// SearchFiles yields files whose names contain pattern, case-insensitively.
func (o *Organizer) SearchFiles(pattern string) iter.Seq[tree.Match] {
	return o.tree.SearchFiles(o.tree.Root(), pattern)
}

// Statistics reports folder, file and index counters.
func (o *Organizer) Statistics() Stats {
	t := o.tree.Statistics(o.tree.Root())
	ix := o.index.Stats()
	return Stats{
		FolderCount:    t.Folders,
		FileCount:      t.Files,
		TableCapacity:  ix.Capacity,
		TableLiveCount: ix.Live,
		LoadFactor:     ix.LoadFactor,
		CollisionCount: ix.Collisions,
		Tombstones:     ix.Tombstones,
		Rehashes:       ix.Rehashes,
	}
}

// Rehash forces the index to grow and drop its tombstones.
func (o *Organizer) Rehash() {
	start := time.Now()
	capacity := o.index.Capacity()
	o.index.Rehash()
	o.noteGrowth(capacity)
	o.observe(OpRehash, start, nil)
}

// Message renders an operation result the way interactive front ends show it.
func Message(msg string, err error) string {
	if err == nil {
		return msg
	}
	switch {
	case errors.Is(err, util.ErrTableFull):
		return "Error: " + err.Error() + " (try rehash)"
	default:
		return "Error: " + err.Error()
	}
}
