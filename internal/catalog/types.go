// Package catalog decodes and validates the per-feature JSON data files.
// Each catalog is an independent document with its own top-level shape;
// loaders validate only their own shape so one broken file never affects
// another renderer.
package catalog

// Widget is one entry from widgets.json, after normalisation.
type Widget struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	File           string   `json:"file,omitempty"`
	Link           string   `json:"link,omitempty"`
	Page           string   `json:"page,omitempty"`
	Image          string   `json:"image,omitempty"`
	ButtonLabel    string   `json:"buttonLabel,omitempty"`
	HowtoFile      string   `json:"howtoFile,omitempty"`
	Actions        []string `json:"actions,omitempty"`
	ShowOnDiscover bool     `json:"showOnDiscover,omitempty"`
	ShowOnTwitch   bool     `json:"showOnTwitch,omitempty"`
	DiscoverOrder  *int     `json:"discoverOrder,omitempty"`
}

// Overlay is one entry from overlays.json.
type Overlay struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	File        string `json:"file,omitempty"`
	PageSlug    string `json:"pageSlug,omitempty"`
}

// InventoryItem is one item in an inventory category.
type InventoryItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	Price      string `json:"price,omitempty"`
	Tags       string `json:"tags,omitempty"`
	Flavour    string `json:"flavour,omitempty"`
	Effect     string `json:"effect,omitempty"`
	Recipe     string `json:"recipe,omitempty"`
	Obtainable string `json:"obtainable,omitempty"`
	Use        string `json:"use,omitempty"`
	Limit      string `json:"limit,omitempty"`
}

// InventoryCategory is one named category from inventory.json.
type InventoryCategory struct {
	Items []InventoryItem `json:"items"`
}

// GameLink is one external link on a game entry.
type GameLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Game is one entry from games.json.
type Game struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	Image            string     `json:"image,omitempty"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	Platform         string     `json:"platform,omitempty"`
	Genre            string     `json:"genre,omitempty"`
	Status           string     `json:"status,omitempty"`
	Rating           float64    `json:"rating,omitempty"`
	DateStarted      string     `json:"dateStarted,omitempty"`
	DateCompleted    string     `json:"dateCompleted,omitempty"`
	RotaDay          string     `json:"rotaDay,omitempty"`
	YoutubeVideoID   string     `json:"youtubeVideoId,omitempty"`
	TutorialYoutubeID string    `json:"tutorialYoutubeId,omitempty"`
	Review           string     `json:"review,omitempty"`
	Links            []GameLink `json:"links,omitempty"`
}

// MusicTab is a filter tab from music.json.
type MusicTab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MusicAlbum groups tracks in music.json.
type MusicAlbum struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Artwork string `json:"artwork,omitempty"`
}

// MusicTrack is one playable track.
type MusicTrack struct {
	Title      string `json:"title,omitempty"`
	Artist     string `json:"artist,omitempty"`
	File       string `json:"file,omitempty"`
	URL        string `json:"url,omitempty"`
	Artwork    string `json:"artwork,omitempty"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
	Tab        string `json:"tab,omitempty"`
	Album      string `json:"album,omitempty"`
}

// Music is the whole music.json document.
type Music struct {
	Tabs   []MusicTab   `json:"tabs,omitempty"`
	Albums []MusicAlbum `json:"albums,omitempty"`
	Tracks []MusicTrack `json:"tracks,omitempty"`
}

// Mention is one external mention from mentions.json (a bare array).
type Mention struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// EmoteSet is one set from emotes.json.
type EmoteSet struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Command is one chat command inside a group.
type Command struct {
	Description string `json:"description,omitempty"`
	Permissions string `json:"permissions,omitempty"`
}

// CommandGroup is one named group from commands.json.
type CommandGroup struct {
	Icon     string             `json:"icon,omitempty"`
	Title    string             `json:"title,omitempty"`
	Commands map[string]Command `json:"commands"`
}

// Commands is the whole commands.json document.
type Commands struct {
	Groups map[string]CommandGroup `json:"groups"`
}

// TouchPortalItem is one downloadable page or button set.
type TouchPortalItem struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	File        string `json:"file,omitempty"`
}

// TouchPortal is the touch-portal.json document.
type TouchPortal struct {
	Pages   []TouchPortalItem `json:"pages,omitempty"`
	Buttons []TouchPortalItem `json:"buttons,omitempty"`
}

// Discover is the optional curated ordering document for the home grid.
// Items are bare ids: each resolves to a widget id first, then a page slug.
type Discover struct {
	Items []string `json:"items"`
}

// ActionImport is one entry from action-imports.json (a bare array).
type ActionImport struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	File        string `json:"file,omitempty"`
	PageSlug    string `json:"pageSlug,omitempty"`
}
