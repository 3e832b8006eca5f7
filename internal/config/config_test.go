package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("BAAS_STORE_URL", "http://baas.local/api:store/")
	t.Setenv("BAAS_MAX_RETRIES", "5")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("TAX_RATE", "0.21")

	cfg := Load()

	assert.Equal(t, "http://baas.local/api:store", cfg.BaaS.StoreURL)
	assert.Equal(t, 5, cfg.BaaS.MaxRetries)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.InDelta(t, 0.21, cfg.Checkout.TaxRate, 1e-9)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"BAAS_TIMEOUT_SEC", "BAAS_UPLOAD_TIMEOUT_SEC", "BAAS_UPLOAD_FIELD", "CURRENCY", "IMAGE_STORE", "SESSION_TTL_HOURS", "TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.BaaS.Timeout())
	assert.Equal(t, 60*time.Second, cfg.BaaS.UploadTimeout())
	assert.Equal(t, "content[]", cfg.BaaS.UploadField)
	assert.Equal(t, "CLP", cfg.Checkout.Currency)
	assert.Equal(t, "baas", cfg.Images.Store)
	assert.Equal(t, int64(10*1024*1024), cfg.Images.MaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("AF_STR", "value")
	t.Setenv("AF_BOOL", "true")
	t.Setenv("AF_BAD_BOOL", "maybe")
	t.Setenv("AF_INT", "123")
	t.Setenv("AF_BAD_INT", "12a")
	t.Setenv("AF_FLOAT", "0.5")
	t.Setenv("AF_BAD_FLOAT", "x")

	assert.Equal(t, "value", getEnv("AF_STR", "default"))
	assert.Equal(t, "default", getEnv("AF_MISSING", "default"))

	assert.True(t, getEnvBool("AF_BOOL", false))
	assert.True(t, getEnvBool("AF_BAD_BOOL", true))
	assert.False(t, getEnvBool("AF_MISSING", false))

	assert.Equal(t, 123, getEnvInt("AF_INT", 0))
	assert.Equal(t, 10, getEnvInt("AF_BAD_INT", 10))
	assert.Equal(t, 10, getEnvInt("AF_MISSING", 10))

	assert.Equal(t, 0.5, getEnvFloat("AF_FLOAT", 0))
	assert.Equal(t, 0.19, getEnvFloat("AF_BAD_FLOAT", 0.19))
}
