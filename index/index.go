package index

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dendrascience/dendra-file-organizer/util"
)

const (
	DefaultInitialCapacity = 10
	DefaultGrowthFactor    = 2
	DefaultLoadFactor      = 0.7
)

// Options configures a new Index.
type Options struct {
	InitialCapacity int     // slot count before any growth
	GrowthFactor    int     // capacity multiplier applied by Rehash
	LoadFactor      float64 // live/capacity ratio that triggers growth before an insert
	Probing         Probing // probe policy, fixed for the table's lifetime
}

// DefaultOptions returns a 10 slot table doubling at 70% load with linear probing.
func DefaultOptions() Options {
	return Options{
		InitialCapacity: DefaultInitialCapacity,
		GrowthFactor:    DefaultGrowthFactor,
		LoadFactor:      DefaultLoadFactor,
		Probing:         Linear,
	}
}

func (o Options) normalized() Options {
	if o.InitialCapacity < 1 {
		o.InitialCapacity = DefaultInitialCapacity
	}
	if o.GrowthFactor < 2 {
		o.GrowthFactor = DefaultGrowthFactor
	}
	if o.LoadFactor <= 0 || o.LoadFactor > 1 {
		o.LoadFactor = DefaultLoadFactor
	}
	return o
}

// Entry is a live filename and the full path it resolves to.
type Entry struct {
	Name     string `json:"name"`
	FullPath string `json:"full_path"`
}

type slot struct {
	name      string // as inserted
	key       string // lowercased name used for hashing and comparison
	fullPath  string
	tombstone bool
}

// Stats is a point-in-time view of the table's counters.
type Stats struct {
	Capacity   int     `json:"capacity"`
	Live       int     `json:"live"`
	Tombstones int     `json:"tombstones"`
	Collisions int     `json:"collisions"`
	Rehashes   int     `json:"rehashes"`
	LoadFactor float64 `json:"load_factor"`
}

// Index is an open-addressing hash table from filename to full path.
// Filenames compare case-insensitively. Deletion is lazy: a deleted slot stays
// occupied as a tombstone until the next rehash discards it, and inserts never
// reuse tombstones.
//
// An Index is not safe for concurrent use.
type Index struct {
	opts       Options
	slots      []*slot // nil marks a never-used slot
	live       int
	tombstones int
	collisions int
	rehashes   int
}

// New returns an empty index. Invalid option values fall back to defaults.
func New(opts Options) *Index {
	opts = opts.normalized()
	return &Index{
		opts:  opts,
		slots: make([]*slot, opts.InitialCapacity),
	}
}

// Capacity returns the current slot count.
func (ix *Index) Capacity() int {
	return len(ix.slots)
}

// Len returns the number of live entries.
func (ix *Index) Len() int {
	return ix.live
}

// Stats returns the table counters.
func (ix *Index) Stats() Stats {
	return Stats{
		Capacity:   len(ix.slots),
		Live:       ix.live,
		Tombstones: ix.tombstones,
		Collisions: ix.collisions,
		Rehashes:   ix.rehashes,
		LoadFactor: float64(ix.live) / float64(len(ix.slots)),
	}
}

func (ix *Index) needsGrowth() bool {
	return float64(ix.live) >= float64(len(ix.slots))*ix.opts.LoadFactor
}

// Insert adds name with its full path, or updates the path in place when a live
// entry with the same name (case-insensitively) is reached first. The table
// grows before the insert when the load factor threshold has been reached.
//
// Insert returns an error wrapping util.ErrTableFull when no usable slot is found
// within capacity attempts. That failure does not imply any growth happened;
// tombstones can saturate a table whose live load is still low.
func (ix *Index) Insert(name, fullPath string) error {
	if ix.needsGrowth() {
		ix.Rehash()
	}
	if !ix.place(name, strings.ToLower(name), fullPath) {
		return fmt.Errorf("insert %q: no free slot after %d probes: %w", name, len(ix.slots), util.ErrTableFull)
	}
	return nil
}

// place runs the insertion probe without the growth check.
func (ix *Index) place(name, key, fullPath string) bool {
	capacity := len(ix.slots)
	home := Hash(key, capacity)
	for attempt := range capacity {
		pos := ix.opts.Probing.slotFor(home, attempt, capacity)
		s := ix.slots[pos]
		if s == nil {
			ix.slots[pos] = &slot{name: name, key: key, fullPath: fullPath}
			ix.live++
			if attempt > 0 {
				ix.collisions++
			}
			return true
		}
		if !s.tombstone && s.key == key {
			s.fullPath = fullPath
			return true
		}
	}
	return false
}

// find returns the position of the live slot for key, or -1. The probe stops at
// the first never-used slot; tombstones are stepped over.
func (ix *Index) find(key string) int {
	capacity := len(ix.slots)
	home := Hash(key, capacity)
	for attempt := range capacity {
		pos := ix.opts.Probing.slotFor(home, attempt, capacity)
		s := ix.slots[pos]
		if s == nil {
			return -1
		}
		if !s.tombstone && s.key == key {
			return pos
		}
	}
	return -1
}

// Search looks name up case-insensitively.
func (ix *Index) Search(name string) (Entry, bool) {
	pos := ix.find(strings.ToLower(name))
	if pos < 0 {
		return Entry{}, false
	}
	s := ix.slots[pos]
	return Entry{Name: s.name, FullPath: s.fullPath}, true
}

// Delete tombstones the live entry for name. It returns false when no live
// entry exists.
func (ix *Index) Delete(name string) bool {
	pos := ix.find(strings.ToLower(name))
	if pos < 0 {
		return false
	}
	ix.slots[pos].tombstone = true
	ix.live--
	ix.tombstones++
	return true
}

// Rehash grows the table by the growth factor and replays every live entry
// into the new slots. Tombstones are dropped and the live and collision counters
// are recomputed for the new layout.
//
// With quadratic probing a replay can fail to find a slot; in that case the
// table grows again and the replay restarts, so entries are never lost.
func (ix *Index) Rehash() {
	old := ix.slots
	capacity := len(old) * ix.opts.GrowthFactor
	for !ix.rebuild(old, capacity) {
		capacity *= ix.opts.GrowthFactor
	}
	ix.rehashes++
}

func (ix *Index) rebuild(old []*slot, capacity int) bool {
	ix.slots = make([]*slot, capacity)
	ix.live = 0
	ix.tombstones = 0
	ix.collisions = 0
	for _, s := range old {
		if s == nil || s.tombstone {
			continue
		}
		if !ix.place(s.name, s.key, s.fullPath) {
			return false
		}
	}
	return true
}

// Entries yields the live entries in slot order.
func (ix *Index) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, s := range ix.slots {
			if s == nil || s.tombstone {
				continue
			}
			if !yield(Entry{Name: s.name, FullPath: s.fullPath}) {
				return
			}
		}
	}
}
