package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Calendars *CalendarRepository
}

func New(db postgres.DB) *Repositories {
	return &Repositories{
		Calendars: &CalendarRepository{db: db},
	}
}
