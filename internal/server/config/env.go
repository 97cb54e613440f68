package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/civichub/internal/flagx"
	"github.com/joho/godotenv"
)

// envPrefix namespaces every variable parseEnv reads.
const envPrefix = "CIVICHUB_"

// loadEnvFile is a seam for tests.
var loadEnvFile = godotenv.Load

// parseEnv overlays config with CIVICHUB_* environment variables. When
// -envfile names a file it is loaded first; variables already set in the
// process environment win over the file. A missing or malformed file panics.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := loadEnvFile(path); err != nil {
			panic(err)
		}
	}

	envString(&config.HTTPAddr, "HTTP_ADDR")
	envString(&config.GRPCAddr, "GRPC_ADDR")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	if v, ok := lookup("TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidity = d
	}
	if v, ok := lookup("CORS_ORIGINS"); ok {
		config.CorsOrigins = splitList(v)
	}
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.S3PublicURL, "S3_PUBLIC_URL")
}

func lookup(name string) (string, bool) {
	return os.LookupEnv(envPrefix + name)
}

func envString(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}
