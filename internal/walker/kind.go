package walker

import (
	"path/filepath"
	"strings"
)

// Kind classifies what the manifest builder does with a file.
type Kind string

const (
	KindFragment Kind = "fragment" // HTML page fragment
	KindDoc      Kind = "doc"      // markdown or plain-text viewer document
	KindData     Kind = "data"     // JSON data file
	KindImage    Kind = "image"    // image asset
	KindOther    Kind = "other"
)

var extKinds = map[string]Kind{
	".html": KindFragment,
	".htm":  KindFragment,
	".md":   KindDoc,
	".txt":  KindDoc,
	".json": KindData,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".webp": KindImage,
	".svg":  KindImage,
	".ico":  KindImage,
}

// DetectKind classifies a file by its extension.
func DetectKind(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if k, ok := extKinds[ext]; ok {
		return k
	}
	return KindOther
}
