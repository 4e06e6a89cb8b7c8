package dtos_test

import (
	"testing"

	"agenda.xdoubleu.com/apps/agenda/internal/dtos"
	"github.com/stretchr/testify/assert"
)

func TestCreateCalendarDtoValidate(t *testing.T) {
	dto := dtos.CreateCalendarDto{
		Name:       "Calendario 2026",
		SourceURL:  "https://example.com/calendario.html",
		SourceKind: "html",
		Year:       2026,
	}

	ok, errs := dto.Validate()
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestCreateCalendarDtoValidateErrors(t *testing.T) {
	dto := dtos.CreateCalendarDto{
		Name:       "",
		SourceURL:  "file:///etc/passwd",
		SourceKind: "pdf",
		Year:       1800,
	}

	ok, errs := dto.Validate()
	assert.False(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "source_url")
	assert.Contains(t, errs, "source_kind")
	assert.Contains(t, errs, "year")
}
