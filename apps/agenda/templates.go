package agenda

import (
	"errors"
	"fmt"
	"net/http"

	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"agenda.xdoubleu.com/internal/constants"
	sharedmodels "agenda.xdoubleu.com/internal/models"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	tpltools "github.com/xdoubleu/essentia/v2/pkg/tpl"
)

func (app *Agenda) templateRoutes(prefix string, mux *http.ServeMux) {
	mux.Handle(
		fmt.Sprintf("GET /%s/static/", prefix),
		http.StripPrefix(fmt.Sprintf("/%s/", prefix), http.FileServerFS(app.static)),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{$}", prefix),
		app.Services.Auth.TemplateAccess(app.indexHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/calendars/{id}", prefix),
		app.calendarHandler,
	)
}

type indexData struct {
	User        sharedmodels.User
	Calendars   []models.Calendar
	SourceKinds []models.SourceKind
}

func (app *Agenda) indexHandler(w http.ResponseWriter, r *http.Request) {
	user := contexttools.GetValue[sharedmodels.User](
		r.Context(),
		constants.UserContextKey,
	)
	if user == nil {
		panic(errors.New("not signed in"))
	}

	calendars, err := app.Services.Calendar.List(r.Context())
	if err != nil {
		panic(err)
	}

	tpltools.RenderWithPanic(app.tpl, w, "index.html", indexData{
		User:        *user,
		Calendars:   calendars,
		SourceKinds: models.SourceKinds,
	})
}

type calendarData struct {
	Calendar   models.Calendar
	Events     []models.Event
	Categories []string
	FeedURL    string
}

func (app *Agenda) calendarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		http.Error(w, "Invalid calendar", http.StatusBadRequest)
		return
	}

	cal, err := app.Services.Calendar.Get(r.Context(), id)
	if errors.Is(err, database.ErrResourceNotFound) {
		http.Error(w, "Calendar not found", http.StatusNotFound)
		return
	}
	if err != nil {
		panic(err)
	}

	events, err := app.Services.Calendar.Events(r.Context(), id)
	if err != nil {
		panic(err)
	}

	tpltools.RenderWithPanic(app.tpl, w, "calendar.html", calendarData{
		Calendar:   *cal,
		Events:     events,
		Categories: app.Services.Calendar.Categories(events),
		FeedURL:    fmt.Sprintf("/%s/calendars/%s/feed.ics", app.GetName(), cal.ID),
	})
}
