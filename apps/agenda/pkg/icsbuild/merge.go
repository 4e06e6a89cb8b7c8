package icsbuild

import (
	"crypto/md5" //nolint:gosec //uids only need to be stable, not secret
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
)

const day = 24 * time.Hour

// Event is an all-day event. End is exclusive.
type Event struct {
	UID        string
	Summary    string
	Categories []string
	Start      time.Time
	End        time.Time
}

// LastDay is the final day the event covers.
func (e Event) LastDay() time.Time {
	return e.End.Add(-day)
}

type group struct {
	titles map[time.Time]string
	tags   map[time.Time]map[string]struct{}
}

// Merge turns extracted items into events. Items with the same title are
// grouped and every run of consecutive days becomes a single event.
func Merge(items []extract.Item, year int, uidDomain string) []Event {
	order := []string{}
	groups := map[string]*group{}

	for _, item := range items {
		date, ok := extract.ParseDate(item.Date, item.Table, year)
		if !ok {
			continue
		}

		title := strings.TrimSpace(item.Text)
		key := strings.ToLower(strings.Join(strings.Fields(title), " "))

		g, exists := groups[key]
		if !exists {
			g = &group{
				titles: map[time.Time]string{},
				tags:   map[time.Time]map[string]struct{}{},
			}
			groups[key] = g
			order = append(order, key)
		}

		g.titles[date] = title
		if g.tags[date] == nil {
			g.tags[date] = map[string]struct{}{}
		}
		for _, tag := range item.Tags {
			g.tags[date][tag] = struct{}{}
		}
	}

	events := []Event{}
	for _, key := range order {
		events = append(events, groups[key].events(uidDomain)...)
	}

	return events
}

func (g *group) events(uidDomain string) []Event {
	dates := make([]time.Time, 0, len(g.titles))
	for date := range g.titles {
		dates = append(dates, date)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	events := []Event{}
	run := []time.Time{dates[0]}

	for _, date := range dates[1:] {
		if date.Equal(run[len(run)-1].Add(day)) {
			run = append(run, date)
			continue
		}

		events = append(events, g.flush(run, uidDomain))
		run = []time.Time{date}
	}

	return append(events, g.flush(run, uidDomain))
}

func (g *group) flush(run []time.Time, uidDomain string) Event {
	start := run[0]
	last := run[len(run)-1]
	summary := g.titles[start]

	seen := map[string]struct{}{}
	for _, date := range run {
		for tag := range g.tags[date] {
			seen[tag] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for tag := range seen {
		categories = append(categories, tag)
	}
	slices.Sort(categories)

	return Event{
		UID:        UID(summary, start, last, uidDomain),
		Summary:    summary,
		Categories: categories,
		Start:      start,
		End:        last.Add(day),
	}
}

// UID depends only on the summary and the covered days.
func UID(summary string, start time.Time, last time.Time, domain string) string {
	raw := fmt.Sprintf(
		"%s|%s|%s",
		summary,
		start.Format(time.DateOnly),
		last.Format(time.DateOnly),
	)

	//nolint:gosec //see import
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:]) + "@" + domain
}
