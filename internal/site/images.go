package site

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/dexnexus/streamlab/internal/walker"
)

// buildImageMap scans the image directories and maps each bare filename to
// its site-relative path. When the same filename appears in more than one
// directory the first occurrence wins; dirs are scanned in the order given.
func buildImageMap(root string, dirs []string) (map[string]string, int, error) {
	images := make(map[string]string)

	for _, dir := range dirs {
		abs := filepath.Join(root, filepath.FromSlash(dir))
		entries, err := os.ReadDir(abs)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("build: image dir %s missing, skipping", dir)
				continue
			}
			return nil, 0, fmt.Errorf("reading image dir %s: %w", dir, err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Type().IsRegular() && walker.DetectKind(e.Name()) == walker.KindImage {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if prev, dup := images[name]; dup {
				log.Printf("build: image %s already mapped to %s, ignoring %s", name, prev, path.Join(dir, name))
				continue
			}
			images[name] = path.Join(dir, name)
		}
	}

	return images, len(images), nil
}
