package config

import (
	"os"
	"strings"

	"track-catalog/matching"
)

type Config struct {
	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Server
	Port string
	Host string

	// Catalog
	SeedCatalog  bool
	BrandAliases map[string]string
}

func Load() *Config {
	cfg := &Config{
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "trackcatalog"),
		Port:       getEnv("PORT", "8080"),
		Host:       getEnv("HOST", "0.0.0.0"),
	}

	cfg.SeedCatalog = getEnv("SEED_CATALOG", "false") == "true"

	// Brand aliases come from the built-in table unless overridden.
	aliasesStr := getEnv("BRAND_ALIASES", "")
	if aliasesStr == "" {
		cfg.BrandAliases = matching.DefaultBrandAliases()
	} else {
		cfg.BrandAliases = parseBrandAliases(aliasesStr)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBrandAliases parses "alias=Canonical,alias2=Canonical2" pairs. Alias
// keys are lowered and trimmed; canonical values keep their casing. Malformed
// pairs are skipped.
func parseBrandAliases(aliasesStr string) map[string]string {
	aliases := map[string]string{}

	for _, pair := range strings.Split(aliasesStr, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		alias := strings.ToLower(strings.TrimSpace(parts[0]))
		canonical := strings.TrimSpace(parts[1])
		if alias == "" || canonical == "" {
			continue
		}
		aliases[alias] = canonical
	}

	return aliases
}
