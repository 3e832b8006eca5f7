package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ambientefest/internal/config"
)

func TestValidateMinIO(t *testing.T) {
	full := config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "images"}

	tests := []struct {
		name    string
		mutate  func(c *config.MinIOConfig)
		wantErr string
	}{
		{name: "complete", mutate: func(*config.MinIOConfig) {}},
		{name: "no endpoint", mutate: func(c *config.MinIOConfig) { c.Endpoint = "" }, wantErr: "MINIO_ENDPOINT"},
		{name: "no secret", mutate: func(c *config.MinIOConfig) { c.SecretKey = "" }, wantErr: "MINIO_SECRET_KEY"},
		{name: "no bucket", mutate: func(c *config.MinIOConfig) { c.Bucket = "" }, wantErr: "MINIO_BUCKET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			err := validateMinIO(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
