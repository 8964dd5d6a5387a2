package release

import (
	"os"
	"strings"
)

const (
	// DefaultFile is read by Get when no path is given
	DefaultFile = "version.txt"
	// Unknown is reported when the release file cannot be read
	Unknown = "__UNKNOWN__"
)

// Get returns the trimmed contents of the release file at path, or of
// version.txt in the working directory when path is empty. It returns
// Unknown if the file cannot be read.
func Get(path string) string {
	if path == "" {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Unknown
	}
	return strings.TrimSpace(string(b))
}
