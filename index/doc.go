// Package index implements the filename index of the organizer: an
// open-addressing hash table mapping a filename to the full path of the folder
// entry that holds it.
//
// Key Properties:
//   - The hash is the sum of the lowercased code points modulo capacity, so
//     anagrams collide and probing is exercised constantly
//   - Collisions are resolved by linear probing by default, or quadratic
//     probing when configured; one policy is used for a table's lifetime
//   - Deletion is lazy: deleted slots become tombstones that keep probe chains
//     intact and are discarded only by a rehash
//   - Growth multiplies capacity (doubling by default) once live entries reach
//     the load factor threshold (0.7 by default), before the triggering insert
//
// Insert reports util.ErrTableFull when a probe sequence is exhausted. Callers
// that keep other structures in step with the index, like the organizer, must
// roll those back on that error.
package index
