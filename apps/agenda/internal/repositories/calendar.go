package repositories

import (
	"context"
	"encoding/json"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type CalendarRepository struct {
	db postgres.DB
}

func (repo *CalendarRepository) CreateCalendar(
	ctx context.Context,
	cal models.Calendar,
) error {
	query := `
		INSERT INTO agenda.calendars (id, name, source_url, source_kind, year)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := repo.db.Exec(
		ctx,
		query,
		cal.ID,
		cal.Name,
		cal.SourceURL,
		string(cal.SourceKind),
		cal.Year,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *CalendarRepository) GetCalendar(
	ctx context.Context,
	id string,
) (*models.Calendar, error) {
	query := `
		SELECT id, name, source_url, source_kind, year, last_import
		FROM agenda.calendars
		WHERE id = $1
	`

	cal, err := scanCalendar(repo.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return cal, nil
}

func (repo *CalendarRepository) ListCalendars(
	ctx context.Context,
) ([]models.Calendar, error) {
	query := `
		SELECT id, name, source_url, source_kind, year, last_import
		FROM agenda.calendars
		ORDER BY name
	`

	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	calendars := []models.Calendar{}
	for rows.Next() {
		var cal *models.Calendar
		cal, err = scanCalendar(rows)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		calendars = append(calendars, *cal)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return calendars, nil
}

func (repo *CalendarRepository) DeleteCalendar(
	ctx context.Context,
	id string,
) error {
	query := `
		DELETE FROM agenda.calendars
		WHERE id = $1
	`

	result, err := repo.db.Exec(ctx, query, id)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

// ReplaceEvents swaps all events of a calendar in one statement and
// records the import time.
func (repo *CalendarRepository) ReplaceEvents(
	ctx context.Context,
	calendarID string,
	events []models.Event,
	importedAt time.Time,
) error {
	query := `
		WITH stamped AS (
			UPDATE agenda.calendars SET last_import = $7
			WHERE id = $1
		), removed AS (
			DELETE FROM agenda.events
			WHERE calendar_id = $1
		)
		INSERT INTO agenda.events
			(calendar_id, uid, summary, categories, start_date, end_date)
		SELECT
			$1, e.uid, e.summary,
			ARRAY(SELECT jsonb_array_elements_text(e.categories::jsonb)),
			e.start_date, e.end_date
		FROM unnest($2::text[], $3::text[], $4::text[], $5::date[], $6::date[])
			AS e(uid, summary, categories, start_date, end_date)
	`

	uids := make([]string, len(events))
	summaries := make([]string, len(events))
	categories := make([]string, len(events))
	starts := make([]time.Time, len(events))
	ends := make([]time.Time, len(events))

	for i, event := range events {
		list, err := categoriesParam(event.Categories)
		if err != nil {
			return err
		}

		uids[i] = event.UID
		summaries[i] = event.Summary
		categories[i] = list
		starts[i] = event.Start
		ends[i] = event.End
	}

	_, err := repo.db.Exec(
		ctx,
		query,
		calendarID,
		uids,
		summaries,
		categories,
		starts,
		ends,
		importedAt,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *CalendarRepository) GetEvents(
	ctx context.Context,
	calendarID string,
) ([]models.Event, error) {
	query := `
		SELECT uid, summary, categories, start_date, end_date
		FROM agenda.events
		WHERE calendar_id = $1
		ORDER BY start_date, summary
	`

	rows, err := repo.db.Query(ctx, query, calendarID)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		//nolint:exhaustruct //other fields are initialized later
		event := models.Event{CalendarID: calendarID}

		err = rows.Scan(
			&event.UID,
			&event.Summary,
			&event.Categories,
			&event.Start,
			&event.End,
		)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalendar(row scanner) (*models.Calendar, error) {
	//nolint:exhaustruct //other fields are initialized later
	cal := models.Calendar{}

	var kind string
	err := row.Scan(
		&cal.ID,
		&cal.Name,
		&cal.SourceURL,
		&kind,
		&cal.Year,
		&cal.LastImport,
	)
	if err != nil {
		return nil, err
	}

	cal.SourceKind = models.SourceKind(kind)
	return &cal, nil
}

// categoriesParam encodes one event's categories as a JSON list. Postgres
// arrays cannot nest lists of different lengths.
func categoriesParam(categories []string) (string, error) {
	if categories == nil {
		categories = []string{}
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
