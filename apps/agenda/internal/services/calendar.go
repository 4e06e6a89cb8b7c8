package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/dtos"
	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"agenda.xdoubleu.com/apps/agenda/pkg/eventfilter"
	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsbuild"
	"agenda.xdoubleu.com/apps/agenda/pkg/tablesource"
	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

const ProductID = "-//agenda.xdoubleu.com//EN"

type Store interface {
	CreateCalendar(ctx context.Context, cal models.Calendar) error
	GetCalendar(ctx context.Context, id string) (*models.Calendar, error)
	ListCalendars(ctx context.Context) ([]models.Calendar, error)
	DeleteCalendar(ctx context.Context, id string) error
	ReplaceEvents(
		ctx context.Context,
		calendarID string,
		events []models.Event,
		importedAt time.Time,
	) error
	GetEvents(ctx context.Context, calendarID string) ([]models.Event, error)
}

type CalendarService struct {
	logger    *slog.Logger
	store     Store
	sources   Sources
	uidDomain string
	year      int
}

// ============================================================
// Persistence
// ============================================================

func (s *CalendarService) Create(
	ctx context.Context,
	dto *dtos.CreateCalendarDto,
) (*models.Calendar, error) {
	kind, err := models.ParseSourceKind(dto.SourceKind)
	if err != nil {
		return nil, err
	}

	cal := models.Calendar{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		SourceURL:  dto.SourceURL,
		SourceKind: kind,
		Year:       dto.Year,
		LastImport: nil,
	}

	if err = s.store.CreateCalendar(ctx, cal); err != nil {
		return nil, err
	}

	if _, err = s.Import(ctx, &cal); err != nil {
		if delErr := s.store.DeleteCalendar(ctx, cal.ID); delErr != nil {
			s.logger.Error("failed to remove calendar", logging.ErrAttr(delErr))
		}
		return nil, err
	}

	return &cal, nil
}

func (s *CalendarService) Get(
	ctx context.Context,
	id string,
) (*models.Calendar, error) {
	return s.store.GetCalendar(ctx, id)
}

func (s *CalendarService) List(ctx context.Context) ([]models.Calendar, error) {
	return s.store.ListCalendars(ctx)
}

func (s *CalendarService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCalendar(ctx, id)
}

func (s *CalendarService) Events(
	ctx context.Context,
	id string,
) ([]models.Event, error) {
	return s.store.GetEvents(ctx, id)
}

// ============================================================
// Import
// ============================================================

// Import loads the calendar's source and replaces its stored events.
func (s *CalendarService) Import(
	ctx context.Context,
	cal *models.Calendar,
) (int, error) {
	events, err := s.load(ctx, cal)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", cal.Name, err)
	}

	stored := make([]models.Event, 0, len(events))
	for _, ev := range events {
		stored = append(stored, models.EventFromICS(cal.ID, ev))
	}

	now := time.Now().UTC()
	if err = s.store.ReplaceEvents(ctx, cal.ID, stored, now); err != nil {
		return 0, err
	}

	cal.LastImport = &now

	s.logger.Info(
		"imported calendar",
		slog.String("calendar", cal.ID),
		slog.Int("events", len(stored)),
	)

	return len(stored), nil
}

// RefreshAll re-imports every calendar. A failing calendar does not
// stop the others.
func (s *CalendarService) RefreshAll(ctx context.Context) error {
	calendars, err := s.store.ListCalendars(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for i := range calendars {
		if _, err = s.Import(ctx, &calendars[i]); err != nil {
			s.logger.Error("failed to refresh calendar", logging.ErrAttr(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *CalendarService) load(
	ctx context.Context,
	cal *models.Calendar,
) ([]icsbuild.Event, error) {
	switch cal.SourceKind {
	case models.SourceICS:
		data, err := s.sources.ICS.Fetch(ctx, cal.SourceURL)
		if err != nil {
			return nil, err
		}
		return icsbuild.Decode(data)
	case models.SourceHTML:
		return s.fromTables(ctx, s.sources.HTML, cal)
	case models.SourceCSV:
		return s.fromTables(ctx, s.sources.CSV, cal)
	default:
		return nil, fmt.Errorf("unknown source kind: %q", cal.SourceKind)
	}
}

func (s *CalendarService) fromTables(
	ctx context.Context,
	client tablesource.Client,
	cal *models.Calendar,
) ([]icsbuild.Event, error) {
	tables, err := client.Tables(ctx, cal.SourceURL)
	if err != nil {
		return nil, err
	}

	items := extract.Extract(tables)
	s.logger.Debug(fmt.Sprintf("extracted %d items from %d tables", len(items), len(tables)))

	return icsbuild.Merge(items, s.yearFor(cal), s.uidDomain), nil
}

func (s *CalendarService) yearFor(cal *models.Calendar) int {
	if cal.Year != 0 {
		return cal.Year
	}
	if s.year != 0 {
		return s.year
	}
	return time.Now().Year()
}

// ============================================================
// Presentation
// ============================================================

// Categories lists the distinct categories events are filed under.
func (s *CalendarService) Categories(events []models.Event) []string {
	seen := map[string]string{}
	for _, event := range events {
		category := event.Category()
		if category == "" {
			continue
		}

		key := strings.ToLower(category)
		if _, ok := seen[key]; !ok {
			seen[key] = category
		}
	}

	categories := make([]string, 0, len(seen))
	for _, category := range seen {
		categories = append(categories, category)
	}
	slices.SortFunc(categories, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	return categories
}

// Feed encodes the events that pass the filter as a calendar.
func (s *CalendarService) Feed(
	ctx context.Context,
	id string,
	selected []string,
	search string,
) ([]byte, error) {
	cal, err := s.store.GetCalendar(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.store.GetEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	visible := eventfilter.Apply(selected, search, events, models.Event.Record)

	out := make([]icsbuild.Event, 0, len(visible))
	for _, event := range visible {
		out = append(out, event.ICS())
	}

	return icsbuild.Encode(out, icsbuild.Options{
		ProductID: ProductID,
		Name:      cal.Name,
		Stamp:     time.Now(),
	}), nil
}
