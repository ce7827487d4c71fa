package render

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// renderRotaNext shows the next stream within the 14-day window.
func (p *Processor) renderRotaNext(ctx context.Context, _ *html.Node) string {
	rota, err := p.store.Rota(ctx)
	if err != nil {
		return muted("Couldn't load schedule. Check <code>assets/data/streaming-rota.json</code>.")
	}
	next := rota.NextStream(p.now())
	if next == nil {
		return muted("No upcoming stream in the next 14 days. Edit <code>assets/data/streaming-rota.json</code> to set your schedule.")
	}
	t := next.Time
	if t == "" {
		t = "—"
	}
	return fmt.Sprintf(`<p><strong>%s</strong> — %s at %s</p>`,
		esc(next.Label), esc(next.Date.Format("Monday, January 2, 2006")), esc(t))
}

// renderRotaWeek shows the seven-day schedule.
func (p *Processor) renderRotaWeek(ctx context.Context, _ *html.Node) string {
	rota, err := p.store.Rota(ctx)
	if err != nil {
		return muted("Couldn't load schedule.")
	}
	var b strings.Builder
	b.WriteString(`<ul class="dx-rota-week-list">`)
	for _, day := range rota.WeekEntries(p.now()) {
		date := day.Date.Format("Monday, Jan 2")
		if day.Stream == nil {
			fmt.Fprintf(&b, `<li><strong>%s</strong> — No stream</li>`, esc(date))
			continue
		}
		entry := esc(day.Stream.Label)
		if day.Stream.Time != "" {
			entry += " at " + esc(day.Stream.Time)
		}
		fmt.Fprintf(&b, `<li><strong>%s</strong> — %s</li>`, esc(date), entry)
	}
	b.WriteString(`</ul>`)
	return b.String()
}
