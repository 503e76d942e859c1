// Package main provides the organizer command-line interface.
//
// organizer keeps a folder hierarchy in memory and indexes every file by name
// in an open-addressing hash table, so a file is found without walking the
// tree. The tree and the index are updated together; a failed index update
// rolls the tree back.
//
// The main binary supports multiple subcommands:
//   - shell: Interactive session with cd, ls, add, rm, find, tree and stats
//   - mount: Expose an organizer as a FUSE filesystem
//   - demo: Scripted walkthrough of the core operations
//   - seed: Generated files for exercising collisions and rehashing
//   - scan: Load folder and file names from a real directory
//   - validate: Check the tree and the index against each other
package main
