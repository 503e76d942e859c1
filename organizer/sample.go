package organizer

import "fmt"

// SampleFolders are the folders created by LoadSample, in creation order.
var SampleFolders = []string{
	"Documents/Assignments",
	"Documents/Notes",
	"Pictures/Vacation",
	"Music/Rock",
}

// SampleFiles maps each sample file to its folder, in insertion order.
var SampleFiles = []struct {
	Name   string
	Folder string
}{
	{"project.pdf", "Documents/Assignments"},
	{"homework.docx", "Documents/Assignments"},
	{"notes.txt", "Documents/Notes"},
	{"beach.jpg", "Pictures/Vacation"},
	{"song1.mp3", "Music/Rock"},
}

// LoadSample populates the organizer with a small demonstration data set.
// Files already present are skipped, so loading twice is harmless.
func (o *Organizer) LoadSample() error {
	for _, path := range SampleFolders {
		if _, err := o.CreateFolder(path); err != nil {
			return fmt.Errorf("load sample: %w", err)
		}
	}
	for _, f := range SampleFiles {
		if _, err := o.SearchFile(f.Name); err == nil {
			continue
		}
		if _, err := o.AddFile(f.Name, f.Folder); err != nil {
			return fmt.Errorf("load sample: %w", err)
		}
	}
	return nil
}
