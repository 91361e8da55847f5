package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string

	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int

	// Local durable cache
	DataDir        string
	CacheNamespace string

	// Optional service catalog override (JSON file); empty uses the
	// built-in catalog.
	CatalogPath string

	// Remote mirror. An empty DSN disables mirroring entirely.
	Mirror MirrorConfig

	// Seeded back-office logins (test credentials, no registration flow).
	AdminEmail    string
	AdminPassword string
	StaffEmail    string
	StaffPassword string
}

// MirrorConfig holds remote mirror database connection details
type MirrorConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	mirrorCfg := MirrorConfig{
		Host:     getEnv("MIRROR_DB_HOST", ""),
		Port:     getEnv("MIRROR_DB_PORT", "3306"),
		Username: getEnv("MIRROR_DB_USERNAME", "root"),
		Password: getEnv("MIRROR_DB_PASSWORD", ""),
		Name:     getEnv("MIRROR_DB_NAME", "clinic"),
	}
	// A mirror host opts in to best-effort remote mirroring; without one
	// the server runs purely local-first.
	if mirrorCfg.Host != "" {
		mirrorCfg.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			mirrorCfg.Username, mirrorCfg.Password, mirrorCfg.Host, mirrorCfg.Port, mirrorCfg.Name)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),

		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,

		DataDir:        getEnv("DATA_DIR", "./data"),
		CacheNamespace: getEnv("CACHE_NAMESPACE", "clinic-admin"),
		CatalogPath:    getEnv("CATALOG_PATH", ""),

		Mirror: mirrorCfg,

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@clinic.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin1234"),
		StaffEmail:    getEnv("STAFF_EMAIL", "staff@clinic.local"),
		StaffPassword: getEnv("STAFF_PASSWORD", "staff1234"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
