// Package util provides shared building blocks for the file organizer.
//
// It holds the pieces that every layer agrees on, from the core data
// structures up to the presentation collaborators:
//
// Errors:
//   - ErrAlreadyExists, ErrNotFound, ErrTableFull and ErrInvalidName sentinels
//   - Wrapped with context by the tree, index and organizer packages and matched
//     with errors.Is at the boundaries (shell messages, FUSE errnos, exit codes)
//
// Name Validation:
//   - ValidateName and ValidatePath implement the boundary checks callers run
//     before invoking core mutators: no empty or whitespace-only names, none of
//     the characters / \ : * ? " < > |
//
// Inodes:
//   - InodeRegistry assigns stable inode numbers to full paths for the FUSE view
//   - The root path is pinned to RootInode
package util
