package catalog

import "time"

// RotaRecurring is a weekly recurring stream slot.
type RotaRecurring struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday
	Label     string `json:"label,omitempty"`
	Time      string `json:"time,omitempty"`
}

// RotaOverride replaces whatever the recurring schedule says for one date.
type RotaOverride struct {
	Label string `json:"label,omitempty"`
	Time  string `json:"time,omitempty"`
}

// Rota is the streaming-rota.json document. Precedence per date:
// cancelled wins, then a dated override, then the recurring slot.
type Rota struct {
	Recurring []RotaRecurring         `json:"recurring,omitempty"`
	Overrides map[string]RotaOverride `json:"overrides,omitempty"`
	Cancelled []string                `json:"cancelled,omitempty"`
}

// StreamEntry is the resolved stream for one date.
type StreamEntry struct {
	Label string
	Time  string
	Date  time.Time
}

// RotaWeekEntry is one day of the seven-day view. Stream is nil on days
// with no stream.
type RotaWeekEntry struct {
	Date   time.Time
	Stream *StreamEntry
}

const dateKeyLayout = "2006-01-02"

// StreamForDate resolves the stream for a single date, or nil.
func (r *Rota) StreamForDate(d time.Time) *StreamEntry {
	key := d.Format(dateKeyLayout)
	for _, c := range r.Cancelled {
		if c == key {
			return nil
		}
	}
	if ov, ok := r.Overrides[key]; ok {
		return &StreamEntry{Label: ov.Label, Time: ov.Time, Date: d}
	}
	dow := int(d.Weekday())
	for _, rec := range r.Recurring {
		if rec.DayOfWeek == dow {
			return &StreamEntry{Label: rec.Label, Time: rec.Time, Date: d}
		}
	}
	return nil
}

// NextStream returns the first stream within 14 days of from (inclusive),
// or nil when the window is empty.
func (r *Rota) NextStream(from time.Time) *StreamEntry {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i <= 14; i++ {
		if s := r.StreamForDate(day.AddDate(0, 0, i)); s != nil {
			return s
		}
	}
	return nil
}

// WeekEntries returns the next seven days starting at from, one entry per
// day whether or not it has a stream.
func (r *Rota) WeekEntries(from time.Time) []RotaWeekEntry {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	out := make([]RotaWeekEntry, 0, 7)
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, i)
		out = append(out, RotaWeekEntry{Date: d, Stream: r.StreamForDate(d)})
	}
	return out
}
