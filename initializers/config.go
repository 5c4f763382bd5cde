package initializers

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/farmkart-api/assets"
	"github.com/Kariqs/farmkart-api/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	JWTSecret    string
	CookieSecure bool
	CORSOrigins  []string
	Database     DatabaseConfig
	Assets       AssetConfig
	Mail         utils.MailConfig
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
}

type AssetConfig struct {
	Store         string
	Folder        string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3PublicRead  bool
	Cloudinary    assets.CloudinaryConfig
	UploadTimeout time.Duration
	MaxUploads    int
}

// LoadEnv reads .env when present and builds the configuration from the
// environment.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := getEnv("PORT", "3000")
	cfg := &Config{
		Port:         port,
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"http://localhost:" + port}),
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			URL:             getEnv("DATABASE_URL", "root:@tcp(127.0.0.1:3306)/farmkart?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		},
		Assets: AssetConfig{
			Store:         getEnv("ASSET_STORE", "disk"),
			Folder:        getEnv("ASSET_FOLDER", "farmkart"),
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
			S3Bucket:      os.Getenv("S3_BUCKET"),
			S3PublicRead:  getEnvBool("S3_PUBLIC_READ", true),
			Cloudinary: assets.CloudinaryConfig{
				CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
				APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
				APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			},
			UploadTimeout: getEnvDuration("UPLOAD_TIMEOUT", 2*time.Minute),
			MaxUploads:    getEnvInt("MAX_UPLOADS", 4),
		},
		Mail: utils.MailConfig{
			From:     os.Getenv("FROM_EMAIL"),
			Password: os.Getenv("FROM_EMAIL_PASSWORD"),
			Host:     os.Getenv("FROM_EMAIL_SMTP"),
			Address:  os.Getenv("SMTP_ADDRESS"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
