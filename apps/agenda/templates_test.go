package agenda_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/test"
)

func TestIndex(t *testing.T) {
	cal := createCalendar(t, models.SourceCSV)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/", testApp.GetName()),
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)

	body, err := io.ReadAll(rs.Body)
	require.Nil(t, err)
	assert.Contains(t, string(body), cal.Name)
	assert.Contains(t, string(body), "Signed in as owner@agenda.xdoubleu.com")
}

func TestCalendarPage(t *testing.T) {
	cal := createCalendar(t, models.SourceHTML)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/calendars/%s", testApp.GetName(), cal.ID),
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)

	body, err := io.ReadAll(rs.Body)
	require.Nil(t, err)

	page := string(body)
	assert.Contains(t, page, `id="categoryFilter"`)
	assert.Contains(t, page, `<option value="all" selected>All</option>`)
	assert.Contains(t, page, `<option value="B1">B1</option>`)
	assert.Contains(t, page, `id="searchInput"`)
	assert.Contains(
		t,
		page,
		`<li class="event" data-category="B1">2 Mar 2026 - 3 Mar 2026 Inicio de clases B1 [B1]</li>`,
	)
	assert.Contains(
		t,
		page,
		`<li class="event" data-category="">9 Mar 2026 Fall Festival</li>`,
	)
}

func TestCalendarPageNotFound(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/calendars/missing", testApp.GetName()),
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func TestStaticFilterScript(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/static/calendar.js", testApp.GetName()),
	)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusOK, rs.StatusCode)

	body, err := io.ReadAll(rs.Body)
	require.Nil(t, err)
	assert.Contains(t, string(body), "categoryFilter")
}
