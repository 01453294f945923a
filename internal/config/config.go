package config

import (
	"os"
	"strconv"
	"strings"
)

// APIConfig holds the settings for the trader API server. DatabaseURL is
// optional; without it the server runs an in-memory session only and the
// save endpoints report that persistence is disabled.
type APIConfig struct {
	Addr        string
	DatabaseURL string
	CatalogPath string
	Seed        int64
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("ORBITAL_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:        addr,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CatalogPath: strings.TrimSpace(os.Getenv("ORBITAL_CATALOG_PATH")),
		Seed:        envInt64Default("ORBITAL_SEED", 0),
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("ORBITAL_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
