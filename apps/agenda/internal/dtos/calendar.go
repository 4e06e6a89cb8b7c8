package dtos

import (
	"net/url"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
)

type CreateCalendarDto struct {
	Name       string `schema:"name"`
	SourceURL  string `schema:"source_url"`
	SourceKind string `schema:"source_kind"`
	Year       int    `schema:"year"`
}

func (dto *CreateCalendarDto) Validate() (bool, map[string]string) {
	errs := make(map[string]string)

	if dto.Name == "" {
		errs["name"] = "must be provided"
	}

	if dto.SourceURL == "" {
		errs["source_url"] = "must be provided"
	} else if u, err := url.Parse(dto.SourceURL); err != nil ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs["source_url"] = "must be an http or https url"
	}

	if _, err := models.ParseSourceKind(dto.SourceKind); err != nil {
		errs["source_kind"] = err.Error()
	}

	//nolint:mnd //a sane calendar range
	if dto.Year != 0 && (dto.Year < 1970 || dto.Year > time.Now().Year()+10) {
		errs["year"] = "out of range"
	}

	return len(errs) == 0, errs
}
