package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-wellness/internal/adapters/storage/memory"
	pg "pet-wellness/internal/adapters/storage/postgres"
	"pet-wellness/internal/domain/pets"
	"pet-wellness/internal/domain/records"
	"pet-wellness/internal/domain/wellness"
	"pet-wellness/internal/middleware"
	"pet-wellness/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

// Services expone los services armados por NewRouter para que main pueda
// colgarles el scheduler de snapshots sin rearmar el wiring.
type Services struct {
	Pets     *pets.Service
	Records  *records.Service
	Wellness *wellness.Service
}

func NewRouter(opts Options) (http.Handler, Services) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		petRepo     pets.Repository
		recordsRepo records.Repository
		snapsRepo   wellness.SnapshotStore
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		recordsRepo = pg.NewRecordsRepo(db)
		snapsRepo = pg.NewSnapshotsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		recordsRepo = mem.NewRecordsRepo()
		snapsRepo = mem.NewSnapshotsRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	recordsSvc := records.NewService(recordsRepo)
	wellnessSvc := wellness.NewService(recordsSvc, snapsRepo)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	records.RegisterRoutes(r, recordsSvc, petsSvc)
	wellness.RegisterRoutes(r, wellnessSvc, petsSvc)

	return r, Services{
		Pets:     petsSvc,
		Records:  recordsSvc,
		Wellness: wellnessSvc,
	}
}
