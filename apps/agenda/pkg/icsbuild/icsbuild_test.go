package icsbuild_test

import (
	"strings"
	"testing"
	"time"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestMergeJoinsConsecutiveDays(t *testing.T) {
	items := []extract.Item{
		{Date: "2 mar", Text: "Exámenes B1", Table: 1, Tags: []string{"B1"}},
		{Date: "3 mar", Text: "exámenes  b1", Table: 1, Tags: []string{"B2"}},
		{Date: "4 mar", Text: "Exámenes B1", Table: 1, Tags: []string{}},
		{Date: "9 mar", Text: "Exámenes B1", Table: 1, Tags: []string{"S1"}},
		{Date: "5 mar", Text: "Feriado", Table: 1, Tags: []string{}},
		{Date: "Semana", Text: "Sin fecha", Table: 1, Tags: []string{}},
	}

	events := icsbuild.Merge(items, 2026, "agenda.test")

	require.Len(t, events, 3)

	assert.Equal(t, "Exámenes B1", events[0].Summary)
	assert.Equal(t, []string{"B1", "B2"}, events[0].Categories)
	assert.Equal(t, date(2026, time.March, 2), events[0].Start)
	assert.Equal(t, date(2026, time.March, 5), events[0].End)
	assert.Equal(t, date(2026, time.March, 4), events[0].LastDay())

	assert.Equal(t, []string{"S1"}, events[1].Categories)
	assert.Equal(t, date(2026, time.March, 9), events[1].Start)
	assert.Equal(t, date(2026, time.March, 10), events[1].End)

	assert.Equal(t, "Feriado", events[2].Summary)
	assert.Empty(t, events[2].Categories)
}

func TestMergeUsesTitleOfFirstDay(t *testing.T) {
	items := []extract.Item{
		{Date: "11 mar", Text: "receso", Table: 1},
		{Date: "10 mar", Text: "Receso", Table: 1},
	}

	events := icsbuild.Merge(items, 2026, "agenda.test")

	require.Len(t, events, 1)
	assert.Equal(t, "Receso", events[0].Summary)
}

func TestUIDIsStable(t *testing.T) {
	start := date(2026, time.March, 2)
	last := date(2026, time.March, 4)

	uid := icsbuild.UID("Exámenes", start, last, "agenda.test")

	assert.Equal(t, uid, icsbuild.UID("Exámenes", start, last, "agenda.test"))
	assert.NotEqual(t, uid, icsbuild.UID("Exámenes", start, start, "agenda.test"))
	assert.True(t, strings.HasSuffix(uid, "@agenda.test"))
	assert.Len(t, strings.TrimSuffix(uid, "@agenda.test"), 32)
}

func TestEncode(t *testing.T) {
	events := []icsbuild.Event{
		{
			UID:        "one@agenda.test",
			Summary:    "Inicio de clases",
			Categories: []string{"B1", "B2"},
			Start:      date(2026, time.March, 2),
			End:        date(2026, time.March, 3),
		},
		{
			UID:     "two@agenda.test",
			Summary: "Feriado",
			Start:   date(2026, time.April, 1),
			End:     date(2026, time.April, 4),
		},
	}

	data := string(icsbuild.Encode(events, icsbuild.Options{
		ProductID: "-//agenda//EN",
		Stamp:     time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC),
	}))

	assert.True(t, strings.HasPrefix(data, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, data, "PRODID:-//agenda//EN\r\n")
	assert.Contains(t, data, "METHOD:PUBLISH\r\n")
	assert.Contains(t, data, "CALSCALE:GREGORIAN\r\n")
	assert.Contains(t, data, "UID:one@agenda.test\r\n")
	assert.Contains(t, data, "DTSTAMP:20261018T093000Z\r\n")
	assert.Contains(t, data, "SUMMARY:Inicio de clases\r\n")
	assert.Contains(t, data, "\r\nCATEGORIES:B1\r\nCATEGORIES:B2\r\n")
	assert.NotContains(t, data, `B1\,B2`)
	assert.Contains(t, data, "DTSTART;VALUE=DATE:20260302\r\n")
	assert.Contains(t, data, "DTEND;VALUE=DATE:20260404\r\n")
	assert.Equal(t, 2, strings.Count(data, "CATEGORIES"))
	assert.Equal(t, strings.Count(data, "\n"), strings.Count(data, "\r\n"))
	assert.Equal(t, 2, strings.Count(data, "BEGIN:VEVENT"))
}

func TestDecodeReadsEncodedEvents(t *testing.T) {
	events := []icsbuild.Event{
		{
			UID:        "one@agenda.test",
			Summary:    "Inicio de clases",
			Categories: []string{"S2"},
			Start:      date(2026, time.March, 2),
			End:        date(2026, time.March, 4),
		},
	}

	data := icsbuild.Encode(events, icsbuild.Options{
		ProductID: "-//agenda//EN",
		Stamp:     time.Now(),
	})

	decoded, err := icsbuild.Decode(data)
	require.Nil(t, err)
	assert.Equal(t, events, decoded)
}

func TestCategoriesWithCommasSurviveRoundTrip(t *testing.T) {
	events := []icsbuild.Event{
		{
			UID:        "talk@agenda.test",
			Summary:    "Charla",
			Categories: []string{"Music, Talks", "S1"},
			Start:      date(2026, time.March, 10),
			End:        date(2026, time.March, 11),
		},
	}

	data := icsbuild.Encode(events, icsbuild.Options{
		ProductID: "-//agenda//EN",
		Stamp:     time.Now(),
	})
	assert.Contains(t, string(data), "CATEGORIES:Music\\, Talks\r\n")

	decoded, err := icsbuild.Decode(data)
	require.Nil(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, []string{"Music, Talks", "S1"}, decoded[0].Categories)
}

func TestDecodeKeepsEscapedCommasInCategories(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:list",
		"SUMMARY:Feria",
		`CATEGORIES:Food\, Drinks,Fair`,
		"DTSTART;VALUE=DATE:20261010",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, err := icsbuild.Decode([]byte(data))
	require.Nil(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"Food, Drinks", "Fair"}, events[0].Categories)
}

func TestDecodeTimedEvents(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:timed",
		"SUMMARY:Charla\\, auditorio",
		"CATEGORIES:Music,Talks",
		"DTSTART:20260310T150000Z",
		"DTEND:20260310T170000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-end",
		"SUMMARY:Sin fin",
		"DTSTART;VALUE=DATE:20260311",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-start",
		"SUMMARY:Ignorado",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, err := icsbuild.Decode([]byte(data))
	require.Nil(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Charla, auditorio", events[0].Summary)
	assert.Equal(t, []string{"Music", "Talks"}, events[0].Categories)
	assert.Equal(t, date(2026, time.March, 10), events[0].Start)
	assert.Equal(t, date(2026, time.March, 11), events[0].End)

	assert.Equal(t, "no-end", events[1].UID)
	assert.Empty(t, events[1].Categories)
	assert.Equal(t, date(2026, time.March, 12), events[1].End)
}
