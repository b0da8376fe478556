package classify

import "testing"

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple extension", "notes.txt", "TXT"},
		{"already uppercase", "REPORT.PDF", "PDF"},
		{"mixed case", "Image1.PnG", "PNG"},
		{"multiple dots", "archive.tar.gz", "GZ"},
		{"no extension", "Makefile", "OTHER"},
		{"empty name", "", "OTHER"},
		{"dotfile", ".gitignore", "GITIGNORE"},
		{"dotfile with extension", ".config.yaml", "YAML"},
		{"trailing dot", "weird.", "OTHER"},
		{"only a dot", ".", "OTHER"},
		{"spaces in name", "my file.csv", "CSV"},
		{"numeric extension", "backup.001", "001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.in); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryDeterministic(t *testing.T) {
	// Every name must resolve without surprises, repeatedly.
	names := []string{"a.txt", ".gitignore", "noext", "trailing.", "..double"}
	for _, name := range names {
		first := Category(name)
		for i := 0; i < 3; i++ {
			if got := Category(name); got != first {
				t.Errorf("Category(%q) not stable: %q then %q", name, first, got)
			}
		}
	}
}
