package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

type Config struct {
	CockroachURL      string        `ff:"long: cockroach-url, default: postgresql://root@127.0.0.1:26257/defaultdb?sslmode=disable, usage: URL for the CockroachDB database"`
	Port              uint32        `ff:"long: port, short: p, default: 4444, usage: Port for the HTTP server"`
	NATSURL           string        `ff:"long: nats-url, usage: NATS server URL for cross-node fan-out. Empty runs an in-process pub/sub"`
	BackgroundTimeout time.Duration `ff:"long: background-timeout, default: 15s, usage: Timeout for background notification dispatch"`
	CodeCacheSize     int           `ff:"long: code-cache-size, default: 1024, usage: Max entries in the friend code resolution cache"`
	CodeCacheTTL      time.Duration `ff:"long: code-cache-ttl, default: 1h, usage: TTL for friend code resolution cache entries"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	fs := ff.NewFlagSetFrom("morsafar", &cfg)
	err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("MORSAFAR"))
	if errors.Is(err, ff.ErrHelp) {
		fmt.Println(ffhelp.Flags(fs))
		os.Exit(0)
	}

	return cfg, err
}
