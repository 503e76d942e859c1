// Package tree holds the folder hierarchy of the organizer.
//
// Folders live in an arena and are addressed by NodeID handles, so a child can
// refer to its parent without shared ownership. Each folder keeps its children
// and files in insertion order. Folder paths are not stored; Path rebuilds them
// from the parent chain.
//
// Key Features:
//   - Idempotent path creation (CreateFolderPath) and non-creating resolution
//     (FindFolder, FindFolderFrom)
//   - Lazy, restartable pre-order, post-order and level-order traversals as
//     iter.Seq values, implemented without recursion
//   - Case-insensitive substring search over file names and subtree counters
//
// Folders are never removed, which keeps every NodeID valid for the lifetime of
// the tree.
package tree
