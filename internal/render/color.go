package render

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/taigrr/colorhash"
)

const ansiReset = "\033[0m"

// folderPalette holds readable foreground colors for folder names.
var folderPalette = []string{
	"\033[34m", // blue
	"\033[36m", // cyan
	"\033[32m", // green
	"\033[35m", // magenta
	"\033[33m", // yellow
	"\033[94m", // bright blue
	"\033[96m", // bright cyan
	"\033[92m", // bright green
}

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colors. NO_COLOR disables color regardless of the terminal.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether stream, a reader or writer, is an interactive
// terminal.
func IsTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FolderColor returns a stable color for a folder name, so the same folder
// looks the same in every listing.
func FolderColor(name string) string {
	h := colorhash.HashString(name)
	if h < 0 {
		h = -h
	}
	return folderPalette[h%len(folderPalette)]
}

func paint(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ansiReset
}
