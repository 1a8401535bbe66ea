package config

import "os"

// Config holds the runtime configuration, read from the environment.
type Config struct {
	Addr        string // listen address
	Backend     string // badger | file | postgres
	DBPath      string // data directory for the badger and file backends
	DatabaseURL string // postgres connection string
	UploadDir   string
	AdminUser   string
	AdminPass   string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Addr:        getenv("BLOGUE_ADDR", ":8080"),
		Backend:     getenv("BLOGUE_BACKEND", "badger"),
		DBPath:      getenv("BLOGUE_DB_PATH", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   getenv("BLOGUE_UPLOAD_DIR", "uploads"),
		AdminUser:   getenv("ADMIN_USERNAME", "admin"),
		AdminPass:   getenv("ADMIN_PASSWORD", "changeme"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
