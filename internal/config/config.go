package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations,
// costs and byte limits.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign JWTs
	AccessTTLDays   int    // access token time-to-live in days
	RefreshTTLDays  int    // refresh token time-to-live in days
	BcryptCost      int    // bcrypt cost for password hashing
	UploadDir       string // directory where uploaded images are stored
	UploadMaxBytes  int64  // maximum accepted upload size in bytes
	PublicBaseURL   string // base URL prepended to stored upload paths
	SuperAdminEmail string // email of the seeded super admin (optional, informational)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Upload settings
// fall back to sensible defaults so local development works without a
// fully populated environment.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLDays:   intOr("ACCESS_TOKEN_TTL_DAYS", 7),
		RefreshTTLDays:  intOr("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:      intOr("BCRYPT_COST", 10),
		UploadDir:       strOr("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:  int64(intOr("UPLOAD_MAX_BYTES", 5*1024*1024)),
		PublicBaseURL:   strOr("PUBLIC_BASE_URL", ""),
		SuperAdminEmail: os.Getenv("SUPER_ADMIN_EMAIL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// strOr returns the environment value for key or def when unset.
func strOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr returns the integer value of the environment variable or def when
// the variable is unset or not a valid integer.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
