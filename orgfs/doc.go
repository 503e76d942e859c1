// Package orgfs implements a FUSE view of an organizer.
//
// Folders of the organizer appear as directories and files as empty regular
// files. The mounted tree supports a small set of operations:
//
// Key Features:
//   - mkdir creates folders (CreateFolder)
//   - creating a file, for example with touch, adds it (AddFile)
//   - rm deletes a file (DeleteFile); rmdir is refused with EPERM
//   - ls lists subfolders and files in insertion order (ListFolder)
//
// Organizer errors surface as errnos: EEXIST for duplicate names, ENOENT for
// missing names, ENOSPC when the hash index is full and EINVAL for invalid
// names. Inode numbers are stable per path for the lifetime of a mount.
//
// The main entry point is NewFS() which creates a filesystem that can be
// mounted using the bazil.org/fuse library.
package orgfs
