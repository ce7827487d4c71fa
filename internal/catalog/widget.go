package catalog

import "strings"

// DefaultDiscoverOrder places widgets without an explicit discoverOrder in
// the middle of the home grid.
const DefaultDiscoverOrder = 50

// Normalize fills in the widget's derived defaults: file from id, id from
// file, and the action set implied by which of page/file/link is present.
// Explicit actions are kept as-is.
func (w Widget) Normalize() Widget {
	if w.File == "" && w.ID != "" {
		w.File = w.ID + ".html"
	}
	if w.ID == "" {
		if w.File != "" {
			w.ID = strings.TrimSuffix(w.File, ".html")
		} else {
			w.ID = "widget"
		}
	}
	if len(w.Actions) == 0 {
		switch {
		case w.Page != "":
			w.Actions = []string{"page"}
		case w.File != "":
			w.Actions = []string{"open", "download", "copyUrl"}
		case w.Link != "":
			w.Actions = []string{"open", "copyUrl"}
		}
	}
	return w
}

// EffectiveDiscoverOrder returns the explicit order or the default.
func (w Widget) EffectiveDiscoverOrder() int {
	if w.DiscoverOrder != nil {
		return *w.DiscoverOrder
	}
	return DefaultDiscoverOrder
}

// HasAction reports whether the normalised action list contains name.
func (w Widget) HasAction(name string) bool {
	for _, a := range w.Actions {
		if a == name {
			return true
		}
	}
	return false
}
