// Package classify maps filenames to category labels.
//
// A category is the uppercase file extension (the substring after the
// final dot), or the fallback label Other when the name has no usable
// extension. Categories double as destination subfolder names.
package classify

import "strings"

// Other is the fallback category for names without an extension.
const Other = "OTHER"

// Category returns the category label for a filename.
//
// "report.pdf" -> "PDF", "archive.tar.gz" -> "GZ", "Makefile" -> "OTHER".
// Dotfiles resolve by their suffix: ".gitignore" -> "GITIGNORE".
// A trailing dot leaves no suffix and falls back to Other.
func Category(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return Other
	}

	ext := name[idx+1:]
	if ext == "" {
		return Other
	}

	return strings.ToUpper(ext)
}
