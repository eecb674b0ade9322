package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	memblob "petcare-hub/internal/adapters/blob/memory"
	mem "petcare-hub/internal/adapters/storage/memory"
	pg "petcare-hub/internal/adapters/storage/postgres"
	_ "petcare-hub/internal/docs"
	"petcare-hub/internal/domain/bookings"
	"petcare-hub/internal/domain/community"
	"petcare-hub/internal/domain/integrations"
	"petcare-hub/internal/domain/marketplace"
	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/medicalrecords"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/domain/pets"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/notifications"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
	"petcare-hub/internal/ports/auth"
	"petcare-hub/internal/ports/blob"
	"petcare-hub/internal/realtime"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Blob nil => store en memoria servido en /media.
	Blob           blob.Store
	BlobSigningKey string
	SignedURLTTL   time.Duration
	MaxUploadBytes int64

	InviteTTL    time.Duration
	PublicAppURL string

	// Cualquier proveedor puede ser nil (=> 503 en sus rutas).
	Providers integrations.Providers

	Logger      logger.Logger
	Metrics     *metrics.Metrics
	Hub         *realtime.Hub
	RateLimiter *middleware.RateLimiter
}

// App expone lo que cmd/api necesita además del handler (jobs, shutdown).
type App struct {
	Handler       http.Handler
	Organizations *organizations.Service
	Bookings      *bookings.Service
	Hub           *realtime.Hub
	RateLimiter   *middleware.RateLimiter
	Metrics       *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	return Build(opts).Handler
}

type repos struct {
	orgs        organizations.Repository
	pets        pets.Repository
	bookings    bookings.Repository
	records     medicalrecords.Repository
	marketplace marketplace.Repository
	community   community.Repository
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		return repos{
			orgs:        pg.NewOrganizationsRepo(db),
			pets:        pg.NewPetsRepo(db),
			bookings:    pg.NewBookingsRepo(db),
			records:     pg.NewRecordsRepo(db),
			marketplace: pg.NewMarketplaceRepo(db),
			community:   pg.NewCommunityRepo(db),
		}
	}
	return repos{
		orgs:        mem.NewOrganizationsRepo(),
		pets:        mem.NewPetRepo(),
		bookings:    mem.NewBookingsRepo(),
		records:     mem.NewRecordsRepo(),
		marketplace: mem.NewMarketplaceRepo(),
		community:   mem.NewCommunityRepo(),
	}
}

func Build(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	hub := opts.Hub
	if hub == nil {
		hub = realtime.NewHub(realtime.WithMetrics(m), realtime.WithLogger(log))
	}
	store := opts.Blob
	if store == nil {
		store = memblob.New(opts.BlobSigningKey, "/media")
	}
	files := media.NewService(store, opts.SignedURLTTL, opts.MaxUploadBytes)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Metrics(m))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Repos + services por módulo
	rp := newRepos(opts.DB)
	dispatcher := notifications.NewDispatcher(opts.Providers.Mailer, opts.Providers.Pusher, opts.PublicAppURL, log)

	orgsSvc := organizations.NewService(rp.orgs,
		organizations.WithNotifier(dispatcher),
		organizations.WithPublisher(hub),
		organizations.WithLogger(log),
		organizations.WithInviteTTL(opts.InviteTTL),
	)
	petsSvc := pets.NewService(rp.pets, orgsSvc,
		pets.WithMedia(files),
		pets.WithPublisher(hub),
		pets.WithLogger(log),
	)
	bookingsSvc := bookings.NewService(rp.bookings, petsSvc, orgsSvc,
		bookings.WithNotifier(dispatcher),
		bookings.WithPublisher(hub),
		bookings.WithLogger(log),
	)
	recordsSvc := medicalrecords.NewService(rp.records, petsSvc, orgsSvc,
		medicalrecords.WithClinicAccess(bookingsSvc),
		medicalrecords.WithMedia(files),
		medicalrecords.WithPublisher(hub),
		medicalrecords.WithLogger(log),
	)
	marketOpts := []marketplace.Option{
		marketplace.WithMedia(files),
		marketplace.WithPublisher(hub),
		marketplace.WithLogger(log),
	}
	if opts.Providers.Payments != nil {
		marketOpts = append(marketOpts, marketplace.WithGateway(opts.Providers.Payments))
	}
	marketSvc := marketplace.NewService(rp.marketplace, orgsSvc, marketOpts...)
	communitySvc := community.NewService(rp.community,
		community.WithPets(petsSvc),
		community.WithMedia(files),
		community.WithPublisher(hub),
		community.WithLogger(log),
	)
	integrationsSvc := integrations.NewService(opts.Providers, orgsSvc,
		integrations.WithMetrics(m),
		integrations.WithLogger(log),
	)

	// Rutas públicas
	if v, ok := store.(media.URLVerifier); ok {
		media.RegisterRoutes(r, store, v)
	}
	pets.RegisterPublicRoutes(r, petsSvc, files)
	marketplace.RegisterPublicRoutes(r, marketSvc, files)

	// Rutas con sesión
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		organizations.RegisterRoutes(r, orgsSvc)
		pets.RegisterRoutes(r, petsSvc, files)
		bookings.RegisterRoutes(r, bookingsSvc)
		medicalrecords.RegisterRoutes(r, recordsSvc, files)
		marketplace.RegisterRoutes(r, marketSvc, files)
		community.RegisterRoutes(r, communitySvc, files)
		integrations.RegisterRoutes(r, integrationsSvc)
		realtime.RegisterRoutes(r, hub, orgsSvc)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequirePlatformRole(auth.PlatformRoleAdmin))
		organizations.RegisterAdminRoutes(r, orgsSvc)
	})

	return &App{
		Handler:       r,
		Organizations: orgsSvc,
		Bookings:      bookingsSvc,
		Hub:           hub,
		RateLimiter:   opts.RateLimiter,
		Metrics:       m,
	}
}
