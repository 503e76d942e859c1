package util

import (
	"fmt"
	"strings"
)

// InvalidNameChars are the characters rejected in file and folder names.
const InvalidNameChars = `/\:*?"<>|`

// ValidateName reports whether name is usable as a file or folder name.
// Empty or whitespace-only names, and names containing any of InvalidNameChars,
// are rejected with an error wrapping ErrInvalidName.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty: %w", ErrInvalidName)
	}
	if i := strings.IndexAny(name, InvalidNameChars); i >= 0 {
		return fmt.Errorf("name %q contains %q (not allowed: %s): %w",
			name, name[i], strings.Join(strings.Split(InvalidNameChars, ""), " "), ErrInvalidName)
	}
	return nil
}

// ValidatePath validates every non-empty segment of a slash separated folder path.
func ValidatePath(path string) error {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if err := ValidateName(segment); err != nil {
			return err
		}
	}
	return nil
}
