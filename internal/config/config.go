package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	PostgresURL string `envconfig:"POSTGRES_URL" required:"true"`

	JWTPrivateKeyPath string        `envconfig:"JWT_PRIVATE_KEY_PATH" default:"keys/jwtPrivkey.pem"`
	JWTPublicKeyPath  string        `envconfig:"JWT_PUBLIC_KEY_PATH" default:"keys/jwtPubkey.pem"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	BcryptCost        int           `envconfig:"BCRYPT_COST" default:"10"`

	BaseURL             string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	PublicDir           string        `envconfig:"PUBLIC_DIR" default:"public/files"`
	PictureFetchTimeout time.Duration `envconfig:"PICTURE_FETCH_TIMEOUT" default:"10s"`

	// Role names, not ids; they are resolved against the role table at startup.
	DefaultSignupRole string `envconfig:"DEFAULT_SIGNUP_ROLE" default:"customer"`
	DefaultAdminRole  string `envconfig:"DEFAULT_ADMIN_ROLE" default:"customer"`

	// Zero keeps the role check uncached.
	RoleCacheTTL time.Duration `envconfig:"ROLE_CACHE_TTL" default:"0s"`

	LoginRatePerSecond float64 `envconfig:"LOGIN_RATE_PER_SECOND" default:"5"`
	LoginRateBurst     int     `envconfig:"LOGIN_RATE_BURST" default:"10"`

	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"identity"`
	// Empty disables span export.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
