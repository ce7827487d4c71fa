package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
)

// Data file names under the data directory.
const (
	WidgetsFile       = "widgets.json"
	OverlaysFile      = "overlays.json"
	InventoryFile     = "inventory.json"
	GamesFile         = "games.json"
	MusicFile         = "music.json"
	MentionsFile      = "mentions.json"
	EmotesFile        = "emotes.json"
	CommandsFile      = "commands.json"
	TouchPortalFile   = "touch-portal.json"
	DiscoverFile      = "discover.json"
	ActionImportsFile = "action-imports.json"
	RotaFile          = "streaming-rota.json"
)

// Store fetches catalog documents on demand. Every load re-reads the file;
// caching happens at the rendered-fragment level, not here, so catalog
// edits show up on the next uncached page load.
type Store struct {
	fsys fs.FS
}

// NewStore serves catalogs from a filesystem tree rooted at the data dir.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

func (s *Store) read(name string, v any) error {
	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Widgets returns the normalised widget list.
func (s *Store) Widgets(_ context.Context) ([]Widget, error) {
	var doc struct {
		Widgets []Widget `json:"widgets"`
	}
	if err := s.read(WidgetsFile, &doc); err != nil {
		return nil, err
	}
	out := make([]Widget, len(doc.Widgets))
	for i, w := range doc.Widgets {
		out[i] = w.Normalize()
	}
	return out, nil
}

func (s *Store) Overlays(_ context.Context) ([]Overlay, error) {
	var doc struct {
		Overlays []Overlay `json:"overlays"`
	}
	if err := s.read(OverlaysFile, &doc); err != nil {
		return nil, err
	}
	return doc.Overlays, nil
}

func (s *Store) Inventory(_ context.Context) (map[string]InventoryCategory, error) {
	var doc struct {
		Categories map[string]InventoryCategory `json:"categories"`
	}
	if err := s.read(InventoryFile, &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (s *Store) Games(_ context.Context) ([]Game, error) {
	var doc struct {
		Games []Game `json:"games"`
	}
	if err := s.read(GamesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Games, nil
}

// Game looks a single game up by id.
func (s *Store) Game(ctx context.Context, id string) (*Game, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].ID == id {
			return &games[i], nil
		}
	}
	return nil, nil
}

func (s *Store) Music(_ context.Context) (*Music, error) {
	var doc Music
	if err := s.read(MusicFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Mentions decodes the bare-array mentions document. Any other top-level
// shape is an error.
func (s *Store) Mentions(_ context.Context) ([]Mention, error) {
	var list []Mention
	if err := s.read(MentionsFile, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) Emotes(_ context.Context) ([]EmoteSet, error) {
	var doc struct {
		Sets []EmoteSet `json:"sets"`
	}
	if err := s.read(EmotesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Sets, nil
}

func (s *Store) Commands(_ context.Context) (*Commands, error) {
	var doc Commands
	if err := s.read(CommandsFile, &doc); err != nil {
		return nil, err
	}
	if doc.Groups == nil {
		return nil, fmt.Errorf("parsing %s: missing groups", CommandsFile)
	}
	return &doc, nil
}

func (s *Store) TouchPortal(_ context.Context) (*TouchPortal, error) {
	var doc TouchPortal
	if err := s.read(TouchPortalFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Discover returns the curated home-grid ordering, or an empty document
// when the file is absent. A missing discover.json is the normal state.
func (s *Store) Discover(_ context.Context) (*Discover, error) {
	var doc Discover
	if err := s.read(DiscoverFile, &doc); err != nil {
		return &Discover{}, nil
	}
	return &doc, nil
}

func (s *Store) ActionImports(_ context.Context) ([]ActionImport, error) {
	var list []ActionImport
	if err := s.read(ActionImportsFile, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) Rota(_ context.Context) (*Rota, error) {
	var doc Rota
	if err := s.read(RotaFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
