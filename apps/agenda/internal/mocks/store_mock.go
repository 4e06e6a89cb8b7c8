package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"github.com/xdoubleu/essentia/v2/pkg/database"
)

type MockStore struct {
	mu        sync.Mutex
	calendars map[string]models.Calendar
	events    map[string][]models.Event
}

func NewMockStore() *MockStore {
	return &MockStore{
		mu:        sync.Mutex{},
		calendars: map[string]models.Calendar{},
		events:    map[string][]models.Event{},
	}
}

func (m *MockStore) CreateCalendar(_ context.Context, cal models.Calendar) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calendars[cal.ID] = cal
	return nil
}

func (m *MockStore) GetCalendar(
	_ context.Context,
	id string,
) (*models.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cal, ok := m.calendars[id]
	if !ok {
		return nil, database.ErrResourceNotFound
	}
	return &cal, nil
}

func (m *MockStore) ListCalendars(_ context.Context) ([]models.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	calendars := []models.Calendar{}
	for _, cal := range m.calendars {
		calendars = append(calendars, cal)
	}
	slices.SortFunc(calendars, func(a, b models.Calendar) int {
		return strings.Compare(a.Name, b.Name)
	})

	return calendars, nil
}

func (m *MockStore) DeleteCalendar(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calendars[id]; !ok {
		return database.ErrResourceNotFound
	}

	delete(m.calendars, id)
	delete(m.events, id)
	return nil
}

func (m *MockStore) ReplaceEvents(
	_ context.Context,
	calendarID string,
	events []models.Event,
	importedAt time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cal, ok := m.calendars[calendarID]
	if !ok {
		return database.ErrResourceNotFound
	}

	cal.LastImport = &importedAt
	m.calendars[calendarID] = cal
	m.events[calendarID] = slices.Clone(events)
	return nil
}

func (m *MockStore) GetEvents(
	_ context.Context,
	calendarID string,
) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := slices.Clone(m.events[calendarID])
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return a.Start.Compare(b.Start)
	})

	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}
