package models

import (
	"strings"
	"time"

	"agenda.xdoubleu.com/apps/agenda/pkg/eventfilter"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsbuild"
)

type Event struct {
	UID        string
	CalendarID string
	Summary    string
	Categories []string
	Start      time.Time
	End        time.Time
}

func EventFromICS(calendarID string, ev icsbuild.Event) Event {
	return Event{
		UID:        ev.UID,
		CalendarID: calendarID,
		Summary:    ev.Summary,
		Categories: ev.Categories,
		Start:      ev.Start,
		End:        ev.End,
	}
}

func (e Event) ICS() icsbuild.Event {
	return icsbuild.Event{
		UID:        e.UID,
		Summary:    e.Summary,
		Categories: e.Categories,
		Start:      e.Start,
		End:        e.End,
	}
}

// Category is what the page filters on. Events with several tags are
// filed under the first one.
func (e Event) Category() string {
	if len(e.Categories) == 0 {
		return ""
	}
	return e.Categories[0]
}

func (e Event) DateLabel() string {
	last := e.ICS().LastDay()
	if !last.After(e.Start) {
		return e.Start.Format("2 Jan 2006")
	}
	return e.Start.Format("2 Jan 2006") + " - " + last.Format("2 Jan 2006")
}

// Text is the visible text of the event on the page.
func (e Event) Text() string {
	parts := []string{e.DateLabel(), e.Summary}
	if len(e.Categories) > 0 {
		parts = append(parts, "["+strings.Join(e.Categories, ", ")+"]")
	}
	return strings.Join(parts, " ")
}

func (e Event) Record() eventfilter.Record {
	return eventfilter.Record{
		Category: e.Category(),
		Text:     e.Text(),
	}
}
