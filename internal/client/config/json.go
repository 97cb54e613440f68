package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/civichub/internal/flagx"
	"github.com/dmitrijs2005/civichub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	BackendURL          *string         `json:"backend_url"`
	HealthAddr          *string         `json:"health_addr"`
	Binding             *string         `json:"binding"`
	DatabaseDSN         *string         `json:"database_dsn"`
	SigningKey          *string         `json:"signing_key"`
	LocalDBPath         *string         `json:"local_db_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SendResolvedAt      *bool           `json:"send_resolved_at"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.BackendURL, jc.BackendURL)
	setIf(&cfg.HealthAddr, jc.HealthAddr)
	if jc.Binding != nil {
		cfg.Binding = Binding(*jc.Binding)
	}
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.SigningKey, jc.SigningKey)
	setIf(&cfg.LocalDBPath, jc.LocalDBPath)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.SendResolvedAt, jc.SendResolvedAt)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
