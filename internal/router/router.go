package router

import (
	"database/sql"
	"net/http"

	_ "symptom-drift/docs"
	mem "symptom-drift/internal/adapters/storage/memory"
	pg "symptom-drift/internal/adapters/storage/postgres"
	"symptom-drift/internal/domain/assessments"
	"symptom-drift/internal/domain/careteam"
	"symptom-drift/internal/domain/history"
	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/symptoms"
	"symptom-drift/internal/middleware"
	"symptom-drift/internal/platform/logger"
	"symptom-drift/internal/platform/metrics"
	"symptom-drift/internal/ports/auth"
	"symptom-drift/internal/ports/extraction"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger    // nil => descarta
	Metrics *metrics.Metrics // nil => sin /metrics

	// nil => POST /patients/{id}/symptoms/extract responde 503
	Extractor extraction.Extractor

	Catalog           *symptoms.Catalog // nil => vocabulario embebido
	PreviousWindow    int
	MaxSymptomsPerLog int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = symptoms.MustDefault()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		patientRepo    patients.Repository
		historyRepo    history.Repository
		assessmentRepo assessments.Repository
		grantRepo      careteam.Repository
	)

	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		historyRepo = pg.NewHistoryRepo(opts.DB)
		assessmentRepo = pg.NewAssessmentsRepo(opts.DB)
		grantRepo = pg.NewGrantsRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		historyRepo = mem.NewHistoryRepo()
		assessmentRepo = mem.NewAssessmentRepo()
		grantRepo = mem.NewGrantRepo()
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo)
	teamSvc := careteam.NewService(grantRepo)
	historySvc := history.NewService(historyRepo, catalog, opts.MaxSymptomsPerLog)

	assessOpts := assessments.Options{
		PreviousWindow: opts.PreviousWindow,
		Logger:         log,
	}
	if opts.Metrics != nil {
		assessOpts.Recorder = opts.Metrics
	}
	assessmentsSvc := assessments.NewService(assessmentRepo, patientsSvc, historySvc, assessOpts)

	// Rutas por módulo
	symptoms.RegisterRoutes(r, catalog)
	patients.RegisterRoutes(r, patientsSvc, teamSvc)
	history.RegisterRoutes(r, historySvc, patientsSvc, teamSvc, opts.Extractor)
	assessments.RegisterRoutes(r, assessmentsSvc, patientsSvc, teamSvc)
	careteam.RegisterRoutes(r, teamSvc, patientsSvc)

	return r
}
