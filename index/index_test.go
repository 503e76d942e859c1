package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/dendra-file-organizer/util"
)

// displaced counts live entries that sit away from their home slot, which is
// exactly the number of placements that needed more than one probe when the
// table was filled by linear probing without deletions.
func displaced(ix *Index) int {
	count := 0
	for pos, s := range ix.slots {
		if s == nil || s.tombstone {
			continue
		}
		if pos != Hash(s.key, len(ix.slots)) {
			count++
		}
	}
	return count
}

func TestHash(t *testing.T) {
	// 'a'+'b'+'c'+'d' = 394
	assert.Equal(t, 4, Hash("abcd", 10))
	assert.Equal(t, 14, Hash("abcd", 20))
	assert.Equal(t, Hash("abcd", 10), Hash("ABCD", 10), "hash must ignore case")
	assert.Equal(t, Hash("abcd", 10), Hash("dcba", 10), "anagrams must collide")
	assert.Equal(t, 0, Hash("", 10))
}

func TestParseProbing(t *testing.T) {
	p, err := ParseProbing("")
	require.NoError(t, err)
	assert.Equal(t, Linear, p)

	p, err = ParseProbing(" Quadratic ")
	require.NoError(t, err)
	assert.Equal(t, Quadratic, p)
	assert.Equal(t, "quadratic", p.String())

	_, err = ParseProbing("cuckoo")
	assert.Error(t, err)
}

func TestNew_NormalizesOptions(t *testing.T) {
	ix := New(Options{InitialCapacity: -3, GrowthFactor: 1, LoadFactor: 1.5})

	assert.Equal(t, DefaultInitialCapacity, ix.Capacity())

	// default load factor and growth factor: the eighth insert doubles 10 slots
	for i := range 7 {
		require.NoError(t, ix.Insert(fmt.Sprintf("k%d", i), "Root"))
	}
	assert.Equal(t, 10, ix.Capacity())
	require.NoError(t, ix.Insert("k7", "Root"))
	assert.Equal(t, 20, ix.Capacity())
}

func TestInsert_AnagramsProbeAndCount(t *testing.T) {
	ix := New(DefaultOptions())
	names := []string{"abcd", "abdc", "acbd", "acdb", "adbc", "adcb"}

	for i, name := range names {
		require.NoError(t, ix.Insert(name, "Root/"+name))
		assert.Equal(t, i, ix.Stats().Collisions, "after inserting %s", name)
	}

	for _, name := range names {
		entry, ok := ix.Search(name)
		require.True(t, ok, "search %s", name)
		assert.Equal(t, "Root/"+name, entry.FullPath)
	}

	stats := ix.Stats()
	assert.Equal(t, len(names)-1, stats.Collisions)
	assert.Equal(t, len(names), stats.Live)
	assert.Equal(t, 10, stats.Capacity, "six entries stay under the 70% threshold")
	assert.Zero(t, stats.Rehashes)

	// home slot 4, then linear neighbours in insertion order
	for offset, name := range names {
		s := ix.slots[4+offset]
		require.NotNil(t, s)
		assert.Equal(t, name, s.name)
	}
}

func TestInsert_UpdatesInPlace(t *testing.T) {
	ix := New(DefaultOptions())

	require.NoError(t, ix.Insert("Notes.txt", "Root/A/Notes.txt"))
	require.NoError(t, ix.Insert("abc", "Root/abc"))
	before := ix.Stats()

	require.NoError(t, ix.Insert("notes.TXT", "Root/B/notes.TXT"))

	after := ix.Stats()
	assert.Equal(t, before.Live, after.Live)
	assert.Equal(t, before.Collisions, after.Collisions)

	entry, ok := ix.Search("NOTES.txt")
	require.True(t, ok)
	assert.Equal(t, "Notes.txt", entry.Name, "stored name is kept")
	assert.Equal(t, "Root/B/notes.TXT", entry.FullPath)
}

func TestDelete_TombstoneKeepsProbeChain(t *testing.T) {
	ix := New(DefaultOptions())

	require.NoError(t, ix.Insert("abc", "Root/abc"))
	require.NoError(t, ix.Insert("bca", "Root/bca")) // collides with abc
	require.NoError(t, ix.Insert("cab", "Root/cab")) // collides with both

	require.True(t, ix.Delete("abc"))

	_, ok := ix.Search("abc")
	assert.False(t, ok, "deleted key must not be found")

	entry, ok := ix.Search("bca")
	require.True(t, ok, "key inserted after the deleted one must still be reachable")
	assert.Equal(t, "Root/bca", entry.FullPath)

	_, ok = ix.Search("CAB")
	assert.True(t, ok)

	stats := ix.Stats()
	assert.Equal(t, 2, stats.Live)
	assert.Equal(t, 1, stats.Tombstones)

	assert.False(t, ix.Delete("abc"), "second delete finds nothing")
	assert.False(t, ix.Delete("missing"))
}

func TestInsert_NeverReusesTombstones(t *testing.T) {
	ix := New(DefaultOptions())

	require.NoError(t, ix.Insert("abc", "Root/abc"))
	require.True(t, ix.Delete("abc"))
	require.NoError(t, ix.Insert("abc", "Root/Again/abc"))

	home := Hash("abc", ix.Capacity())
	assert.True(t, ix.slots[home].tombstone, "home slot stays a tombstone")
	assert.Equal(t, "Root/Again/abc", ix.slots[home+1].fullPath)
	assert.Equal(t, 1, ix.Stats().Collisions)

	entry, ok := ix.Search("abc")
	require.True(t, ok)
	assert.Equal(t, "Root/Again/abc", entry.FullPath)
}

func TestSearch_StopsAtEmptySlot(t *testing.T) {
	ix := New(DefaultOptions())
	require.NoError(t, ix.Insert("abc", "Root/abc"))

	// same home slot, never inserted
	_, ok := ix.Search("cba")
	assert.False(t, ok)
	_, ok = ix.Search("zzz")
	assert.False(t, ok)
}

func TestInsert_RehashAtThreshold(t *testing.T) {
	ix := New(DefaultOptions())
	names := []string{"ab", "ba", "abc", "cab", "notes.txt", "beach.jpg", "song1.mp3"}

	for _, name := range names {
		require.NoError(t, ix.Insert(name, "Root/"+name))
	}
	require.Equal(t, 10, ix.Capacity(), "seven entries reach the threshold of ten slots")
	require.Zero(t, ix.Stats().Rehashes)
	require.Positive(t, ix.Stats().Collisions)

	require.NoError(t, ix.Insert("project.pdf", "Root/project.pdf"))

	stats := ix.Stats()
	assert.Equal(t, 20, stats.Capacity, "exactly one doubling")
	assert.Equal(t, 1, stats.Rehashes)
	assert.Equal(t, len(names)+1, stats.Live)
	assert.Equal(t, displaced(ix), stats.Collisions, "collisions describe the new layout only")

	for _, name := range append(names, "project.pdf") {
		entry, ok := ix.Search(name)
		require.True(t, ok, "search %s after rehash", name)
		assert.Equal(t, "Root/"+name, entry.FullPath)
	}
}

func TestRehash_DropsTombstones(t *testing.T) {
	ix := New(DefaultOptions())
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, ix.Insert(name, "Root/"+name))
	}
	require.True(t, ix.Delete("b"))
	require.True(t, ix.Delete("d"))

	ix.Rehash()

	stats := ix.Stats()
	assert.Equal(t, 20, stats.Capacity)
	assert.Equal(t, 2, stats.Live)
	assert.Zero(t, stats.Tombstones)

	var names []string
	for entry := range ix.Entries() {
		names = append(names, entry.Name)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, names)
}

func TestInsert_TableFullFromTombstones(t *testing.T) {
	ix := New(DefaultOptions())

	// every slot ends up a tombstone while the live count stays at zero
	for i := range 10 {
		name := fmt.Sprintf("file%d", i)
		require.NoError(t, ix.Insert(name, "Root/"+name))
		require.True(t, ix.Delete(name))
	}
	require.Equal(t, 10, ix.Stats().Tombstones)

	err := ix.Insert("one-more", "Root/one-more")
	require.ErrorIs(t, err, util.ErrTableFull)
	assert.Equal(t, 10, ix.Capacity(), "a full table is not a growth trigger")
	assert.Zero(t, ix.Len())

	ix.Rehash()
	require.NoError(t, ix.Insert("one-more", "Root/one-more"))
}

func TestQuadraticProbing(t *testing.T) {
	ix := New(Options{InitialCapacity: 10, LoadFactor: 1.0, Probing: Quadratic})

	// home 4, then 4+1 and 4+4
	require.NoError(t, ix.Insert("abc", "Root/abc"))
	require.NoError(t, ix.Insert("bca", "Root/bca"))
	require.NoError(t, ix.Insert("cab", "Root/cab"))
	assert.Equal(t, "bca", ix.slots[5].name)
	assert.Equal(t, "cab", ix.slots[8].name)

	require.True(t, ix.Delete("bca"))
	_, ok := ix.Search("cab")
	assert.True(t, ok, "tombstone must not end a quadratic probe either")

	// i*i mod 10 only reaches offsets {0,1,4,5,6,9}: the chain saturates early
	for _, name := range []string{"acb", "bac", "cba"} {
		require.NoError(t, ix.Insert(name, "Root/"+name))
	}
	require.Equal(t, 5, ix.Len())

	// "aa" also hashes to 4; every slot its sequence can reach is taken
	require.Equal(t, 4, Hash("aa", 10))
	err := ix.Insert("aa", "Root/aa")
	require.ErrorIs(t, err, util.ErrTableFull)
	assert.Equal(t, 10, ix.Capacity())
}

func TestQuadraticRehashKeepsEntries(t *testing.T) {
	ix := New(Options{InitialCapacity: 4, GrowthFactor: 2, LoadFactor: 0.9, Probing: Quadratic})

	var inserted []string
	for i := range 60 {
		name := fmt.Sprintf("f%02d.txt", i)
		if err := ix.Insert(name, "Root/"+name); err != nil {
			require.ErrorIs(t, err, util.ErrTableFull)
			continue
		}
		inserted = append(inserted, name)
	}
	require.NotEmpty(t, inserted)

	for _, name := range inserted {
		_, ok := ix.Search(name)
		assert.True(t, ok, "search %s", name)
	}
	assert.Equal(t, len(inserted), ix.Len())
}

func TestEntries_SkipsTombstonesAndStopsEarly(t *testing.T) {
	ix := New(DefaultOptions())
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, ix.Insert(name, "Root/"+name))
	}
	require.True(t, ix.Delete("b"))

	count := 0
	for entry := range ix.Entries() {
		assert.NotEqual(t, "b", entry.Name)
		count++
	}
	assert.Equal(t, 2, count)

	for range ix.Entries() {
		break
	}
}
