package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BLOB_DRIVER", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "memory", cfg.BlobDriver)
	assert.Equal(t, 15*time.Minute, cfg.SignedURLTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	assert.Equal(t, "@every 15m", cfg.InviteSweepSchedule)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INVITE_TTL", "48h")
	t.Setenv("BLOB_DRIVER", "S3")
	t.Setenv("BLOB_S3_BUCKET", "pets")
	t.Setenv("BLOB_S3_PATH_STYLE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 48*time.Hour, cfg.InviteTTL)
	assert.Equal(t, "s3", cfg.BlobDriver)
	assert.True(t, cfg.S3PathStyle)
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := Config{BlobDriver: "s3", SignedURLTTL: time.Minute, InviteTTL: time.Hour, MaxUploadBytes: 1, BookingReminderWindow: time.Hour}
	assert.Error(t, cfg.Validate())

	cfg.S3Bucket = "bucket"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{BlobDriver: "gcs", SignedURLTTL: time.Minute, InviteTTL: time.Hour, MaxUploadBytes: 1, BookingReminderWindow: time.Hour}
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReminderWindowMustBePositive(t *testing.T) {
	cfg := Config{SignedURLTTL: time.Minute, InviteTTL: time.Hour, MaxUploadBytes: 1}
	assert.Error(t, cfg.Validate())

	cfg.BookingReminderWindow = -time.Hour
	assert.Error(t, cfg.Validate())

	cfg.BookingReminderWindow = 24 * time.Hour
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_RejectsZeroReminderWindow(t *testing.T) {
	t.Setenv("BLOB_DRIVER", "")
	t.Setenv("BOOKING_REMINDER_WINDOW", "0s")

	_, err := FromEnv()
	assert.Error(t, err)
}
