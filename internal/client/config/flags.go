package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/civichub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in doc.go are considered; everything else in os.Args is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-b", "-d", "-k", "-l", "-i", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "base URL of the REST backend")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address and port of the gRPC health endpoint")
	binding := fs.String("b", string(cfg.Binding), "gateway binding (rest|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Postgres DSN")
	fs.StringVar(&cfg.SigningKey, "k", cfg.SigningKey, "token signing key")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local SQLite file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.SendResolvedAt, "r", cfg.SendResolvedAt, "send resolvedAt with status changes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Binding = Binding(*binding)
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
