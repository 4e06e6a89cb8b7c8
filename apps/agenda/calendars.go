package agenda

import (
	"errors"
	"fmt"
	"net/http"

	"agenda.xdoubleu.com/apps/agenda/internal/dtos"
	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
)

func (app *Agenda) calendarRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST /%s/import", prefix),
		app.Services.Auth.Access(app.importHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST /%s/calendars/{id}/delete", prefix),
		app.Services.Auth.Access(app.deleteHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/calendars/{id}/feed.ics", prefix),
		app.feedHandler,
	)
}

func (app *Agenda) importHandler(w http.ResponseWriter, r *http.Request) {
	var createCalendarDto dtos.CreateCalendarDto

	err := httptools.ReadForm(r, &createCalendarDto)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if ok, errs := createCalendarDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	cal, err := app.Services.Calendar.Create(r.Context(), &createCalendarDto)
	if err != nil {
		app.logger.Error("failed to import calendar", logging.ErrAttr(err))
		http.Error(w, "Failed to import calendar", http.StatusBadGateway)
		return
	}

	http.Redirect(
		w,
		r,
		fmt.Sprintf("/%s/calendars/%s", app.GetName(), cal.ID),
		http.StatusSeeOther,
	)
}

func (app *Agenda) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		http.Error(w, "Invalid calendar", http.StatusBadRequest)
		return
	}

	err = app.Services.Calendar.Delete(r.Context(), id)
	if errors.Is(err, database.ErrResourceNotFound) {
		http.Error(w, "Calendar not found", http.StatusNotFound)
		return
	}
	if err != nil {
		app.logger.Error("failed to delete calendar", logging.ErrAttr(err))
		http.Error(w, "Failed to delete calendar", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%s/", app.GetName()), http.StatusSeeOther)
}

// feedHandler serves the calendar as ICS. Subscribers can narrow it with
// the same category and search filter the page offers.
func (app *Agenda) feedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		http.Error(w, "Invalid feed URL", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()

	data, err := app.Services.Calendar.Feed(
		r.Context(),
		id,
		query["category"],
		query.Get("q"),
	)
	if errors.Is(err, database.ErrResourceNotFound) {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}
	if err != nil {
		app.logger.Error("failed to build feed", logging.ErrAttr(err))
		http.Error(w, "Failed to build feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, err = w.Write(data)
	if err != nil {
		app.logger.Error("failed to write feed", logging.ErrAttr(err))
	}
}
