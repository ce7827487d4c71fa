package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// siteTree builds a small site tree and returns its root.
func siteTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"content/home.html":             `<h1>Home</h1>`,
		"content/obs.html":              `<h1>OBS</h1>`,
		"content/widgets/howto.md":      "# Howto",
		"assets/data/pages.json":        `{"pages":[]}`,
		"assets/images/placeholder.svg": `<svg></svg>`,
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestWalk_BasicTraversal(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: siteTree(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	expected := map[string]bool{
		"content/home.html":             false,
		"content/obs.html":              false,
		"content/widgets/howto.md":      false,
		"assets/data/pages.json":        false,
		"assets/images/placeholder.svg": false,
	}
	for _, f := range files {
		if _, ok := expected[f.RelPath]; ok {
			expected[f.RelPath] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected file %q not found in walk results", name)
		}
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: siteTree(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.Path == "" {
			t.Error("FileInfo.Path is empty")
		}
		if f.RelPath == "" {
			t.Error("FileInfo.RelPath is empty")
		}
		if f.Size <= 0 {
			t.Errorf("FileInfo.Size for %s is %d, expected > 0", f.RelPath, f.Size)
		}
		if f.Kind == "" {
			t.Errorf("FileInfo.Kind for %s is empty", f.RelPath)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("FileInfo.ContentHash for %s has length %d, expected 64", f.RelPath, len(f.ContentHash))
		}
	}
}

func TestWalk_IncludeFilter(t *testing.T) {
	files, err := Walk(WalkerConfig{
		RootDir: siteTree(t),
		Include: []string{"**/*.html"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if !strings.HasSuffix(f.RelPath, ".html") {
			t.Errorf("include filter **/*.html let through: %s", f.RelPath)
		}
	}
	if len(files) != 2 {
		t.Errorf("expected 2 .html files, got %d", len(files))
	}
}

func TestWalk_ExcludeFilter(t *testing.T) {
	files, err := Walk(WalkerConfig{
		RootDir: siteTree(t),
		Exclude: []string{"**/*.json"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if strings.HasSuffix(f.RelPath, ".json") {
			t.Errorf("exclude filter **/*.json did not exclude: %s", f.RelPath)
		}
	}
}

func TestWalk_SkipsBinaryFiles(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "readme.md"), []byte("# Hello"), 0644)

	// A binary blob with no image extension is skipped.
	binary := make([]byte, 100)
	binary[50] = 0x00
	os.WriteFile(filepath.Join(tmpDir, "blob.bin"), binary, 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.RelPath == "blob.bin" {
			t.Error("binary file blob.bin should have been skipped")
		}
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file (readme.md), got %d", len(files))
	}
}

func TestWalk_KeepsBinaryImages(t *testing.T) {
	tmpDir := t.TempDir()

	// PNG header bytes include NULs; images must survive the binary check.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	os.WriteFile(filepath.Join(tmpDir, "card.png"), png, 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "card.png" {
		t.Fatalf("files = %+v", files)
	}
	if files[0].Kind != KindImage {
		t.Errorf("kind = %q, want %q", files[0].Kind, KindImage)
	}
}

func TestWalk_SkipsLargeFiles(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "small.txt"), []byte("small"), 0644)

	big := make([]byte, 200)
	for i := range big {
		big[i] = 'A'
	}
	os.WriteFile(filepath.Join(tmpDir, "big.txt"), big, 0644)

	files, err := Walk(WalkerConfig{
		RootDir:     tmpDir,
		MaxFileSize: 100, // 100 bytes
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.RelPath == "big.txt" {
			t.Error("big.txt should have been skipped (exceeds MaxFileSize)")
		}
	}
}

func TestWalk_DefaultExcludeDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for _, dir := range []string{"node_modules", ".git"} {
		dirPath := filepath.Join(tmpDir, dir)
		os.MkdirAll(dirPath, 0755)
		os.WriteFile(filepath.Join(dirPath, "file.html"), []byte("content"), 0644)
	}

	os.WriteFile(filepath.Join(tmpDir, "page.html"), []byte("<h1>p</h1>"), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if len(files) != 1 {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.RelPath
		}
		t.Errorf("expected 1 file, got %d: %v", len(files), names)
	}
}

func TestWalk_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("*.log\ndraft.html\n"), 0644)

	os.WriteFile(filepath.Join(tmpDir, "page.html"), []byte("<h1>p</h1>"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "debug.log"), []byte("log data"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "draft.html"), []byte("<h1>d</h1>"), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	relPaths := make([]string, len(files))
	for i, f := range files {
		relPaths[i] = f.RelPath
	}
	sort.Strings(relPaths)

	for _, excluded := range []string{"debug.log", "draft.html"} {
		for _, rp := range relPaths {
			if rp == excluded {
				t.Errorf("file %q should be excluded by .gitignore", excluded)
			}
		}
	}

	foundPage := false
	for _, rp := range relPaths {
		if rp == "page.html" {
			foundPage = true
		}
	}
	if !foundPage {
		t.Error("page.html should not be excluded")
	}
}

func TestWalk_ContentHashConsistency(t *testing.T) {
	dir := siteTree(t)

	files1, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	files2, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	hash1 := make(map[string]string)
	for _, f := range files1 {
		hash1[f.RelPath] = f.ContentHash
	}
	for _, f := range files2 {
		if h, ok := hash1[f.RelPath]; ok {
			if h != f.ContentHash {
				t.Errorf("content hash mismatch for %s: %s vs %s", f.RelPath, h, f.ContentHash)
			}
		}
	}
}

// --- Kind detection tests ---

func TestDetectKind(t *testing.T) {
	tests := []struct {
		filename string
		want     Kind
	}{
		{"page.html", KindFragment},
		{"page.htm", KindFragment},
		{"howto.md", KindDoc},
		{"notes.txt", KindDoc},
		{"pages.json", KindData},
		{"card.png", KindImage},
		{"card.JPG", KindImage},
		{"icon.svg", KindImage},
		{"content/widgets/howto.md", KindDoc},
		{"noextension", KindOther},
		{"style.css", KindOther},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			got := DetectKind(tc.filename)
			if got != tc.want {
				t.Errorf("DetectKind(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

// --- Filter tests ---

func TestMatchesInclude_Empty(t *testing.T) {
	if !MatchesInclude("anything.html", nil) {
		t.Error("empty include patterns should include everything")
	}
}

func TestMatchesInclude_Pattern(t *testing.T) {
	if !MatchesInclude("home.html", []string{"*.html"}) {
		t.Error("*.html should match home.html")
	}
	if MatchesInclude("pages.json", []string{"*.html"}) {
		t.Error("*.html should not match pages.json")
	}
}

func TestMatchesExclude_Empty(t *testing.T) {
	if MatchesExclude("anything.html", nil) {
		t.Error("empty exclude patterns should exclude nothing")
	}
}

func TestMatchesExclude_Pattern(t *testing.T) {
	if !MatchesExclude("debug.log", []string{"*.log"}) {
		t.Error("*.log should match debug.log")
	}
	if MatchesExclude("home.html", []string{"*.log"}) {
		t.Error("*.log should not match home.html")
	}
}

func TestMatchesInclude_DoubleStarPattern(t *testing.T) {
	if !MatchesInclude("content/widgets/howto.md", []string{"**/*.md"}) {
		t.Error("**/*.md should match content/widgets/howto.md")
	}
}
