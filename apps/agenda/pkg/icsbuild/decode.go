package icsbuild

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

//nolint:gochecknoglobals //stateless
var textUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\,`, `,`,
	`\;`, `;`,
	`\n`, "\n",
	`\N`, "\n",
)

// Decode reads the events of an existing calendar. Timed events are
// widened to the days they touch.
func Decode(data []byte) ([]Event, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := []Event{}

	for _, ev := range cal.Events() {
		startProp := ev.GetProperty("DTSTART")
		if startProp == nil {
			continue
		}

		start, timed, err := parseICSTimeWithTZID(startProp)
		if err != nil {
			continue
		}

		startDay := dateOf(start)
		endDay := startDay.Add(day)

		if endProp := ev.GetProperty("DTEND"); endProp != nil {
			var end time.Time
			end, timed, err = parseICSTimeWithTZID(endProp)
			if err == nil {
				endDay = dateOf(end)
				if timed && !isMidnight(end) {
					endDay = endDay.Add(day)
				}
			}
		}

		if !endDay.After(startDay) {
			endDay = startDay.Add(day)
		}

		events = append(events, Event{
			UID:        propertyValue(ev, "UID"),
			Summary:    textUnescaper.Replace(propertyValue(ev, "SUMMARY")),
			Categories: categories(ev),
			Start:      startDay,
			End:        endDay,
		})
	}

	return events, nil
}

func propertyValue(ev *ics.VEvent, name string) string {
	if p := ev.GetProperty(ics.ComponentProperty(name)); p != nil {
		return p.Value
	}
	return ""
}

func categories(ev *ics.VEvent) []string {
	result := []string{}

	for _, p := range ev.Properties {
		if p.IANAToken != string(ics.ComponentPropertyCategories) {
			continue
		}

		for _, c := range splitList(p.Value) {
			c = strings.TrimSpace(textUnescaper.Replace(c))
			if c != "" {
				result = append(result, c)
			}
		}
	}

	return result
}

// splitList splits a TEXT list on the commas that are not escaped.
func splitList(value string) []string {
	parts := []string{}

	var current strings.Builder
	escaped := false
	for _, r := range value {
		switch {
		case escaped:
			current.WriteRune('\\')
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if escaped {
		current.WriteRune('\\')
	}

	return append(parts, current.String())
}

// dateOf keeps the calendar day as seen in the time's own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

func parseICSTime(raw string) (time.Time, bool, error) {
	if t, err := time.Parse("20060102T150405Z", raw); err == nil {
		return t, true, nil
	}

	if t, err := time.Parse("20060102T150405", raw); err == nil {
		return t, true, nil
	}

	if t, err := time.Parse("20060102", raw); err == nil {
		return t, false, nil
	}

	return time.Time{}, false, fmt.Errorf("cannot parse ICS time: %s", raw)
}

func parseICSTimeWithTZID(p *ics.IANAProperty) (time.Time, bool, error) {
	raw := p.Value

	if tzid, ok := p.ICalParameters["TZID"]; ok && len(tzid) > 0 {
		loc, err := time.LoadLocation(tzid[0])
		if err == nil {
			var t time.Time
			if t, err = time.ParseInLocation("20060102T150405", raw, loc); err == nil {
				return t, true, nil
			}
		}
	}

	return parseICSTime(raw)
}
