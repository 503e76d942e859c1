// Package render formats organizer state for terminals: rounded tables for
// statistics and reports, a box-drawn folder tree with stable per-folder
// colors, and folder listings. Color is only emitted when ColorEnabled says the
// destination is a terminal.
package render
