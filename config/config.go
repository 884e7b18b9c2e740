package config

import (
	"fmt"
	"os"
	"sync"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Settings holds the typed process settings. Connection credentials stay
// behind Config so they are read only where they are used.
type Settings struct {
	ServerPort  string `env:"SERVER_PORT,default=5000"`
	EventMode   string `env:"EVENT_MODE,default=DISABLE"`
	LogLevel    string `env:"LOG_LEVEL,default=INFO"`
	Queue       string `env:"RABBITMQ_QUEUE,default=api"`
	NotifyQueue string `env:"RABBITMQ_NOTIFY_QUEUE,default=backoffice"`
}

var loadEnv sync.Once

// Config func to get env value
func Config(key string) string {
	loadEnv.Do(func() {
		// .env is optional, the process environment wins
		_ = godotenv.Load(".env")
	})
	return os.Getenv(key)
}

// Load decodes Settings from the environment, applying defaults.
func Load() (Settings, error) {
	Config("")

	var settings Settings
	if _, err := env.UnmarshalFromEnviron(&settings); err != nil {
		return Settings{}, fmt.Errorf("config error: %w", err)
	}
	return settings, nil
}
