package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/civichub/internal/flagx"
	"github.com/dmitrijs2005/civichub/internal/timex"
)

// JsonConfig is a DTO used only for reading JSON configuration files.
// Pointer fields tell an absent key from a zero value; durations accept
// both "1h" strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	GRPCAddr       *string         `json:"grpc_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	TokenValidity  *timex.Duration `json:"token_validity"`
	CorsOrigins    []string        `json:"cors_origins"`
	S3RootUser     *string         `json:"s3_root_user"`
	S3RootPassword *string         `json:"s3_root_password"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3PublicURL    *string         `json:"s3_public_url"`
}

// parseJson overlays config with the JSON file named by -c or -config.
// Without either flag it does nothing. Read and unmarshal errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCAddr, c.GRPCAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.CorsOrigins != nil {
		config.CorsOrigins = c.CorsOrigins
	}
	setIf(&config.S3RootUser, c.S3RootUser)
	setIf(&config.S3RootPassword, c.S3RootPassword)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIf(&config.S3PublicURL, c.S3PublicURL)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
