package models_test

import (
	"testing"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEventText(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	event := models.Event{
		Summary:    "Exámenes",
		Categories: []string{"B1", "S2"},
		Start:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "2 Mar 2026 - 4 Mar 2026 Exámenes [B1, S2]", event.Text())
	assert.Equal(t, "B1", event.Category())
}

func TestSingleDayEventText(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	event := models.Event{
		Summary: "Feriado",
		Start:   time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "1 May 2026 Feriado", event.Text())
	assert.Equal(t, "", event.Category())
	assert.Equal(t, "", event.Record().Category)
}

func TestParseSourceKind(t *testing.T) {
	kind, err := models.ParseSourceKind("csv")
	assert.Nil(t, err)
	assert.Equal(t, models.SourceCSV, kind)

	_, err = models.ParseSourceKind("pdf")
	assert.NotNil(t, err)
}
