package icsbuild

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

type Options struct {
	ProductID string
	Name      string
	Stamp     time.Time
}

// Encode writes the events as all-day VEVENTs with CRLF line endings.
// Each category gets its own CATEGORIES line.
func Encode(events []Event, opts Options) []byte {
	cal := ics.NewCalendar()
	cal.SetProductId(opts.ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	stamp := opts.Stamp.UTC()

	for _, event := range events {
		vevent := cal.AddEvent(event.UID)
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(event.Summary)

		for _, category := range event.Categories {
			vevent.AddCategory(category)
		}

		vevent.SetAllDayStartAt(event.Start)
		vevent.SetAllDayEndAt(event.End)
	}

	return []byte(cal.Serialize(ics.WithNewLineWindows))
}
