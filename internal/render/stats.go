package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dendrascience/dendra-file-organizer/organizer"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Stats renders organizer statistics as a two column table.
func Stats(s organizer.Stats) string {
	rows := [][]string{
		{"Total folders", Count(s.FolderCount)},
		{"Total files", Count(s.FileCount)},
		{"Hash table size", Count(s.TableCapacity)},
		{"Files in hash table", Count(s.TableLiveCount)},
		{"Load factor", fmt.Sprintf("%.2f", s.LoadFactor)},
		{"Collisions", Count(s.CollisionCount)},
		{"Tombstones", Count(s.Tombstones)},
		{"Rehashes", Count(s.Rehashes)},
	}
	return Table([]string{"Statistic", "Value"}, rows, []Alignment{AlignLeft, AlignRight})
}

// Listing renders a folder listing: subfolders with a trailing slash first,
// then files, followed by a summary line.
func Listing(l organizer.Listing, color bool) string {
	var b strings.Builder
	for _, name := range l.Folders {
		b.WriteString(paint(name+"/", FolderColor(name), color))
		b.WriteByte('\n')
	}
	for _, name := range l.Files {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteString(Summary(len(l.Folders), len(l.Files)))
	b.WriteByte('\n')
	return b.String()
}

// Summary formats a folder and file count.
func Summary(folders, files int) string {
	return fmt.Sprintf("%s %s, %s %s",
		Count(folders), plural(folders, "folder", "folders"),
		Count(files), plural(files, "file", "files"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
