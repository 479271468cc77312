package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bakery-inventory/internal/util"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Observ  ObservabilityConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	DataDir      string
	ProductsFile string
	SalesFile    string
}

// ProductsPath returns the catalog snapshot location
func (s StorageConfig) ProductsPath() string {
	return filepath.Join(s.DataDir, s.ProductsFile)
}

// SalesPath returns the sales snapshot location
func (s StorageConfig) SalesPath() string {
	return filepath.Join(s.DataDir, s.SalesFile)
}

type AuthConfig struct {
	Username string
	Password string
}

type ObservabilityConfig struct {
	LogLevel       string
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	shutdownTimeout, err := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT_SECONDS", "10"))
	if err != nil || shutdownTimeout <= 0 {
		shutdownTimeout = 10
	}

	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", "127.0.0.1:8080"),
			Env:             getEnv("ENV", "development"),
			ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		},
		Storage: StorageConfig{
			DataDir:      getEnv("DATA_DIR", "."),
			ProductsFile: getEnv("PRODUCTS_FILE", "products.avro"),
			SalesFile:    getEnv("SALES_FILE", "sales.avro"),
		},
		Auth: AuthConfig{
			Username: getEnv("AUTH_USERNAME", "admin"),
			Password: getEnv("AUTH_PASSWORD", "admin123"),
		},
		Observ: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", ""),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
	}
}

// Log writes the effective configuration, without secrets
func (c *Config) Log() {
	util.GetLogger().Info("Config loaded",
		zap.String("env", c.Server.Env),
		zap.String("addr", c.Server.Addr),
		zap.String("products_path", c.Storage.ProductsPath()),
		zap.String("sales_path", c.Storage.SalesPath()),
		zap.Bool("tracing", c.Observ.JaegerEndpoint != ""))
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
