package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-clinic-bookings/internal/adapters/storage/memory"
	pg "pet-clinic-bookings/internal/adapters/storage/postgres"
	"pet-clinic-bookings/internal/domain/bookings"
	"pet-clinic-bookings/internal/domain/pets"
	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/domain/vets"
	"pet-clinic-bookings/internal/middleware"
	"pet-clinic-bookings/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Options struct {
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer

	// Opcional: request logging estructurado.
	Logger *zap.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo    users.Repository
		petRepo     pets.Repository
		vetRepo     vets.Repository
		regRepo     vets.RegistrationRepository
		bookingRepo bookings.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Warn("db open failed, falling back to in-memory storage", zap.Error(err))
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		vetRepo = pg.NewVetsRepo(db)
		regRepo = pg.NewRegistrationRepo(db)
		bookingRepo = pg.NewBookingsRepo(db)
	} else {
		memUsers := mem.NewUserRepo()
		memVets := mem.NewVetRepo()
		userRepo = memUsers
		petRepo = mem.NewPetRepo()
		vetRepo = memVets
		regRepo = mem.NewRegistrationRepo(memUsers, memVets)
		bookingRepo = mem.NewBookingRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.Issuer)
	petsSvc := pets.NewService(petRepo)
	vetsSvc := vets.NewService(vetRepo, regRepo, userRepo)
	bookingsSvc := bookings.NewService(bookingRepo, petsSvc, vetsSvc)

	// El guard resuelve identidad contra el mismo store de usuarios.
	g := middleware.NewGuard(usersSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, g)
	pets.RegisterRoutes(r, petsSvc, g)
	vets.RegisterRoutes(r, vetsSvc, g)
	bookings.RegisterRoutes(r, bookingsSvc, petsSvc, usersSvc, vetsSvc, g)

	return r
}
