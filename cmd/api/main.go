package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare-hub/internal/adapters/auth/supabase"
	memblob "petcare-hub/internal/adapters/blob/memory"
	s3blob "petcare-hub/internal/adapters/blob/s3"
	"petcare-hub/internal/adapters/email/resend"
	"petcare-hub/internal/adapters/payments/razorpay"
	"petcare-hub/internal/adapters/push/novu"
	pg "petcare-hub/internal/adapters/storage/postgres"
	"petcare-hub/internal/adapters/textgen/gemini"
	"petcare-hub/internal/config"
	"petcare-hub/internal/domain/integrations"
	"petcare-hub/internal/jobs"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
	"petcare-hub/internal/platform/migrations"
	"petcare-hub/internal/ports/auth"
	"petcare-hub/internal/ports/blob"
	"petcare-hub/internal/router"
)

// @title PetCare Hub API
// @version 1.0
// @description Backend multi-organización: mascotas, turnos, historia clínica, marketplace y comunidad.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	opts := router.Options{
		BlobSigningKey: cfg.BlobSigningKey,
		SignedURLTTL:   cfg.SignedURLTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
		InviteTTL:      cfg.InviteTTL,
		PublicAppURL:   cfg.PublicAppURL,
		Logger:         log,
		Metrics:        metrics.New(),
		RateLimiter:    middleware.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if cfg.AutoMigrate {
			applied, err := migrations.Apply(ctx, db)
			if err != nil {
				return err
			}
			log.Info("migrations applied", map[string]any{"versions": applied})
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory repositories", nil)
	}

	verifier, err := newVerifier(cfg, log)
	if err != nil {
		return err
	}
	opts.AuthVerifier = verifier

	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	opts.Blob = store

	providers, err := newProviders(cfg, log)
	if err != nil {
		return err
	}
	opts.Providers = providers

	app := router.Build(opts)

	scheduler := jobs.New(log, jobs.WithMetrics(app.Metrics))
	if err := registerJobs(scheduler, cfg, app); err != nil {
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// sin WriteTimeout: /realtime es un websocket de larga duración
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	app.Hub.Shutdown()
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Warn("jobs did not stop in time", map[string]any{"error": err})
	}
	return srv.Shutdown(shutdownCtx)
}

func registerJobs(s *jobs.Scheduler, cfg config.Config, app *router.App) error {
	if err := s.Add("expire-invites", cfg.InviteSweepSchedule, app.Organizations.ExpireInvites); err != nil {
		return err
	}
	window := cfg.BookingReminderWindow
	if err := s.Add("booking-reminders", cfg.ReminderSchedule, func(ctx context.Context) (int, error) {
		return app.Bookings.SendReminders(ctx, window)
	}); err != nil {
		return err
	}
	if app.RateLimiter == nil {
		return nil
	}
	return s.Add("ratelimit-sweep", "@every 5m", func(context.Context) (int, error) {
		return app.RateLimiter.Sweep(), nil
	})
}

// newVerifier: sin credenciales de Supabase queda el modo dev (headers X-Debug-*).
func newVerifier(cfg config.Config, log logger.Logger) (auth.AuthVerifier, error) {
	if cfg.SupabaseJWTSecret == "" && (cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "") {
		log.Warn("supabase not configured, accepting debug headers", nil)
		return nil, nil
	}
	v, err := supabase.NewVerifier(supabase.Config{
		URL:       cfg.SupabaseURL,
		AnonKey:   cfg.SupabaseAnonKey,
		JWTSecret: cfg.SupabaseJWTSecret,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func newBlobStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	if cfg.BlobDriver != "s3" {
		return memblob.New(cfg.BlobSigningKey, "/media"), nil
	}
	st, err := s3blob.New(ctx, s3blob.Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		PathStyle:       cfg.S3PathStyle,
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// newProviders deja en nil los proveedores sin credenciales; un *Client nil
// dentro de la interfaz no sería nil.
func newProviders(cfg config.Config, log logger.Logger) (integrations.Providers, error) {
	var p integrations.Providers

	gm, err := gemini.New(gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL})
	if err != nil {
		return p, err
	}
	if gm.IsConfigured() {
		p.Text = gm
	}

	rz, err := razorpay.New(razorpay.Config{KeyID: cfg.RazorpayKeyID, KeySecret: cfg.RazorpayKeySecret, BaseURL: cfg.RazorpayBaseURL})
	if err != nil {
		return p, err
	}
	if rz.IsConfigured() {
		p.Payments = rz
	}

	rs, err := resend.New(resend.Config{APIKey: cfg.ResendAPIKey, From: cfg.ResendFrom, BaseURL: cfg.ResendBaseURL})
	if err != nil {
		return p, err
	}
	if rs.IsConfigured() {
		p.Mailer = rs
	}

	nv, err := novu.New(novu.Config{APIKey: cfg.NovuAPIKey, BaseURL: cfg.NovuBaseURL})
	if err != nil {
		return p, err
	}
	if nv.IsConfigured() {
		p.Pusher = nv
	}

	log.Info("providers", map[string]any{
		"gemini":   p.Text != nil,
		"razorpay": p.Payments != nil,
		"resend":   p.Mailer != nil,
		"novu":     p.Pusher != nil,
	})
	return p, nil
}
