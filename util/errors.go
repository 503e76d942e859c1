package util

import "errors"

// Sentinel errors shared by the tree, index and organizer packages.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Name collisions: a file already present in its folder, or a filename
	// already indexed elsewhere.
	ErrAlreadyExists = errors.New("already exists")

	// Lookup misses for folder paths and filenames.
	ErrNotFound = errors.New("not found")

	// The hash index exhausted every probe attempt without finding a slot.
	ErrTableFull = errors.New("hash table full")

	// Boundary validation failures for file and folder names.
	ErrInvalidName = errors.New("invalid name")
)
