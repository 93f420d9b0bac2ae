package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	Retry      RetryConfig
	Search     SearchConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Translator TranslatorConfig
	Images     ImagesConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL      string
	Host             string
	Port             int
	User             string
	Password         string
	DBName           string
	SSLMode          string
	MinConns         int
	MaxConns         int
	StatementTimeout time.Duration // se aplica como statement_timeout en cada conexión
	AutoMigrate      bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RetryConfig política de reintentos para operaciones transaccionales.
// Espera = WaitMultiplier * 2^(intento-1), acotada por MaxWait.
type RetryConfig struct {
	Attempts       int
	WaitMultiplier time.Duration
	MaxWait        time.Duration
}

// SearchConfig comportamiento del índice de búsqueda.
type SearchConfig struct {
	RefreshConcurrent bool
	RefreshTimeout    time.Duration
	DefaultLimit      int
	MaxLimit          int
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TranslatorConfig traductor de nombres de producto. Sin API key se usa el traductor nulo.
type TranslatorConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

// ImagesConfig resolución de referencias de imagen.
type ImagesConfig struct {
	BaseURL string // prefijo para referencias relativas (ej. claves de archivos subidos)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_RETRY_ATTEMPTS, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "proveo-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:      getString(v, "DATABASE_URL", ""),
			Host:             getString(v, "DB_HOST", "localhost"),
			Port:             getInt(v, "DB_PORT", 5432),
			User:             getString(v, "DB_USER", "postgres"),
			Password:         getString(v, "DB_PASSWORD", ""),
			DBName:           getString(v, "DB_NAME", "proveo"),
			SSLMode:          getString(v, "DB_SSLMODE", "disable"),
			MinConns:         getInt(v, "DB_POOL_MIN_CONNS", 5),
			MaxConns:         getInt(v, "DB_POOL_MAX_CONNS", 20),
			StatementTimeout: time.Duration(getInt(v, "DB_STATEMENT_TIMEOUT_SECONDS", 30)) * time.Second,
			AutoMigrate:      getBool(v, "DB_AUTO_MIGRATE", false),
		},
		Retry: RetryConfig{
			Attempts:       getInt(v, "DB_RETRY_ATTEMPTS", 3),
			WaitMultiplier: getSeconds(v, "DB_RETRY_WAIT_MULTIPLIER", 0.5),
			MaxWait:        getSeconds(v, "DB_RETRY_MAX_WAIT", 5),
		},
		Search: SearchConfig{
			RefreshConcurrent: getBool(v, "SEARCH_REFRESH_CONCURRENT", true),
			RefreshTimeout:    time.Duration(getInt(v, "SEARCH_REFRESH_TIMEOUT_SECONDS", 30)) * time.Second,
			DefaultLimit:      getInt(v, "SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:          getInt(v, "SEARCH_MAX_LIMIT", 100),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 120),
			Issuer:     getString(v, "JWT_ISSUER", "proveo-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
		},
		Translator: TranslatorConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			Timeout:         time.Duration(getInt(v, "TRANSLATOR_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Images: ImagesConfig{
			BaseURL: getString(v, "IMAGES_BASE_URL", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("DB_RETRY_ATTEMPTS debe ser >= 1")
	}
	if c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("DB_POOL_MIN_CONNS (%d) mayor que DB_POOL_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	if c.Search.DefaultLimit < 1 || c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT fuera de rango (1..%d)", c.Search.MaxLimit)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getSeconds lee segundos fraccionarios (ej. "0.5") y los devuelve como duración.
func getSeconds(v *viper.Viper, key string, def float64) time.Duration {
	secs := def
	if v.IsSet(key) {
		if f, err := strconv.ParseFloat(v.GetString(key), 64); err == nil {
			secs = f
		}
	}
	return time.Duration(secs * float64(time.Second))
}
