//nolint:mnd //magic numbers
package mocks

import (
	"context"
	"errors"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsfeed"
	"agenda.xdoubleu.com/apps/agenda/pkg/tablesource"
)

const FailingSource = "https://example.com/broken"

type MockTableSource struct {
}

func NewMockTableSource() tablesource.Client {
	return MockTableSource{}
}

func (m MockTableSource) Tables(
	_ context.Context,
	source string,
) ([]extract.Table, error) {
	if source == FailingSource {
		return nil, errors.New("source unavailable")
	}

	return []extract.Table{
		{
			{"Semana", "Lunes", "Martes", "Miércoles"},
			{"1", "2 mar", "3 mar", "4 mar"},
			{"", "Inicio de clases B1", "Inicio de clases B1", "Taller S2"},
			{"", "", "", ""},
			{"2", "9 mar", "10 mar", "11 mar"},
			{"", "Fall Festival", "", "Winter Concert B2"},
		},
	}, nil
}

type MockICSFeed struct {
}

func NewMockICSFeed() icsfeed.Client {
	return MockICSFeed{}
}

func (m MockICSFeed) Fetch(_ context.Context, url string) ([]byte, error) {
	if url == FailingSource {
		return nil, errors.New("non-200 from calendar: 502")
	}

	return []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//mock//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:music-1\r\n" +
		"SUMMARY:Fall Festival\r\n" +
		"CATEGORIES:Music\r\n" +
		"DTSTART;VALUE=DATE:20261010\r\n" +
		"DTEND;VALUE=DATE:20261012\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:sports-1\r\n" +
		"SUMMARY:Fall Festival\r\n" +
		"CATEGORIES:Sports\r\n" +
		"DTSTART;VALUE=DATE:20261011\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:music-2\r\n" +
		"SUMMARY:Winter Concert\r\n" +
		"CATEGORIES:music\r\n" +
		"DTSTART;VALUE=DATE:20261212\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"), nil
}
