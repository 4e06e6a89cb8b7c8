package agenda

import (
	"embed"
	"html/template"
	"log/slog"
	// needed for embedding timezone data.
	_ "time/tzdata"

	"agenda.xdoubleu.com/apps/agenda/internal/jobs"
	"agenda.xdoubleu.com/apps/agenda/internal/repositories"
	"agenda.xdoubleu.com/apps/agenda/internal/services"
	"agenda.xdoubleu.com/apps/agenda/pkg/icsfeed"
	"agenda.xdoubleu.com/apps/agenda/pkg/tablesource"
	"agenda.xdoubleu.com/internal/auth"
	"agenda.xdoubleu.com/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

//go:embed static/*
var static embed.FS

type Agenda struct {
	logger   *slog.Logger
	Config   config.Config
	tpl      *template.Template
	static   embed.FS
	Services *services.Services
	jobQueue *threading.JobQueue
}

func New(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Agenda {
	remote := tablesource.Options{AllowPrivate: false, AllowFiles: false}

	sources := services.Sources{
		HTML: tablesource.NewHTML(logger, remote),
		CSV:  tablesource.NewCSV(remote),
		ICS:  icsfeed.New(false),
	}

	repos := repositories.New(postgres.NewSpanDB(db))

	return NewInner(authService, logger, cfg, repos.Calendars, sources)
}

func NewInner(
	authService auth.Service,
	logger *slog.Logger,
	cfg config.Config,
	store services.Store,
	sources services.Sources,
) *Agenda {
	tpl := template.Must(template.ParseFS(htmlTemplates, "templates/html/**/*.html"))

	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 1, 10)

	//nolint:exhaustruct //other fields are optional
	app := &Agenda{
		logger:   logger,
		Config:   cfg,
		tpl:      tpl,
		static:   static,
		jobQueue: jobQueue,
	}

	app.Services = services.New(logger, cfg, jobQueue, store, sources, authService)
	app.setJobs()

	return app
}

func (app *Agenda) setJobs() {
	err := app.jobQueue.AddJob(
		jobs.NewRefreshJob(app.Services.Calendar),
		app.Services.WebSocket.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.WebSocket.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *Agenda) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *Agenda) GetName() string {
	return "agenda"
}
