package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultBackendURL = "http://localhost:8080"

var (
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	ContactEmail      string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	log := zap.L()
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Info("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Info("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Info("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AdminUsername = GetEnv("ADMIN_USERNAME", "admin")
	AdminPasswordHash = GetEnv("ADMIN_PASSWORD_HASH")
	ContactEmail = GetEnv("CONTACT_EMAIL", "hello@surveikita.id")

	if JWTSecret == "" {
		log.Warn("❌ JWT_SECRET belum diset! Login admin dinonaktifkan.")
	} else {
		log.Info("✅ JWT_SECRET berhasil dimuat.")
	}
	if AdminPasswordHash == "" {
		log.Warn("❌ ADMIN_PASSWORD_HASH belum diset!")
	}
	log.Info("🔗 Backend survey", zap.String("api", APIBaseURL()), zap.String("relay", BackendBaseURL()))
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvInt membaca integer dari env, fallback ke def kalau kosong/invalid.
func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// APIBaseURL is the survey API used for server-side page fetches.
// Read on every call so a changed environment applies to the next request.
func APIBaseURL() string {
	if v := strings.TrimSpace(os.Getenv("API_BASE_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return BackendBaseURL()
}

// BackendBaseURL is the backend the response relay forwards to.
func BackendBaseURL() string {
	if v := strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultBackendURL
}

// CorsOrigins membaca CORS_ALLOW_ORIGINS (dipisah koma).
func CorsOrigins() string {
	return GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")
}
