package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del servicio. Se lee de env (y de un
// .env opcional en dev).
type Config struct {
	Port      string `env:"PORT,default=8080"`
	AppName   string `env:"APP_NAME,default=petcare-hub"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	// Si DB_DSN está vacío se usan repos in-memory.
	DatabaseDSN string `env:"DB_DSN"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE,default=false"`

	SupabaseURL       string `env:"SUPABASE_URL"`
	SupabaseAnonKey   string `env:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string `env:"SUPABASE_JWT_SECRET"`

	BlobDriver      string        `env:"BLOB_DRIVER,default=memory"`
	BlobSigningKey  string        `env:"BLOB_SIGNING_KEY,default=dev-signing-key"`
	S3Bucket        string        `env:"BLOB_S3_BUCKET"`
	S3Region        string        `env:"BLOB_S3_REGION,default=us-east-1"`
	S3Endpoint      string        `env:"BLOB_S3_ENDPOINT"`
	S3PathStyle     bool          `env:"BLOB_S3_PATH_STYLE,default=false"`
	SignedURLTTL    time.Duration `env:"SIGNED_URL_TTL,default=15m"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES,default=10485760"`
	PublicAppURL    string        `env:"PUBLIC_APP_URL,default=http://localhost:3000"`
	InviteTTL       time.Duration `env:"INVITE_TTL,default=168h"`
	RateLimitRPS    int           `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST,default=40"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL,default=https://api.razorpay.com"`

	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendFrom    string `env:"RESEND_FROM,default=PetCare <no-reply@petcare.local>"`
	ResendBaseURL string `env:"RESEND_BASE_URL,default=https://api.resend.com"`

	NovuAPIKey  string `env:"NOVU_API_KEY"`
	NovuBaseURL string `env:"NOVU_BASE_URL,default=https://api.novu.co"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL,default=gemini-1.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL,default=https://generativelanguage.googleapis.com"`

	// Schedules en formato cron (robfig/cron). Vacío = job deshabilitado.
	InviteSweepSchedule   string        `env:"JOBS_INVITE_SWEEP,default=@every 15m"`
	ReminderSchedule      string        `env:"JOBS_BOOKING_REMINDERS,default=@every 10m"`
	BookingReminderWindow time.Duration `env:"BOOKING_REMINDER_WINDOW,default=24h"`
}

// Load carga .env (si existe) y decodifica el entorno.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv decodifica el entorno actual sin tocar archivos.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	cfg.BlobDriver = strings.ToLower(strings.TrimSpace(cfg.BlobDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.BlobDriver {
	case "memory", "":
	case "s3":
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("config: BLOB_S3_BUCKET required for s3 driver")
		}
	default:
		return fmt.Errorf("config: unknown BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.SignedURLTTL <= 0 {
		return errors.New("config: SIGNED_URL_TTL must be positive")
	}
	if c.InviteTTL <= 0 {
		return errors.New("config: INVITE_TTL must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("config: MAX_UPLOAD_BYTES must be positive")
	}
	if c.BookingReminderWindow <= 0 {
		return errors.New("config: BOOKING_REMINDER_WINDOW must be positive")
	}
	return nil
}

// Addr devuelve la dirección de escucha para http.Server.
func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if p == "" {
		p = "8080"
	}
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}
