// Package organizer pairs a folder tree with a filename hash index and keeps
// the two consistent.
//
// The tree decides membership: which folder holds which file. The index answers
// "where is this file" in expected constant time by mapping each filename,
// compared case-insensitively, to the full path of its folder entry. Every
// mutating call updates the tree first and the index second; when the second
// step fails the first is undone, so callers never observe one structure
// changed without the other.
//
// Operations return a short human readable message on success and an error
// wrapping one of the util sentinels otherwise:
//
//	msg, err := org.AddFile("notes.txt", "Documents/Notes")
//	if errors.Is(err, util.ErrTableFull) {
//		org.Rehash()
//	}
//
// Check runs a full sweep of both structures and is used by tests and the
// validate command.
package organizer
