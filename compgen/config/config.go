package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`

	JWTSecret string `yaml:"jwt_secret"`

	OpenRouterAPIKey  string `yaml:"openrouter_api_key"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url"`
	Model             string `yaml:"model"`

	MinIOEndpoint  string `yaml:"minio_endpoint"`
	MinIOAccessKey string `yaml:"minio_access_key"`
	MinIOSecretKey string `yaml:"minio_secret_key"`
	MinIOBucket    string `yaml:"minio_bucket"`
}

// LoadConfig reads the environment (after an optional .env file) and then
// overlays values from the YAML file named by COMPGEN_CONFIG, if set.
// Env vars fill the base config; the YAML file wins for fields it sets.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: getEnv("PORT", "8000"),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "compgen"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:             getEnv("AI_MODEL", "mistralai/mixtral-8x7b-instruct"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "compgen-exports"),
	}

	if path := os.Getenv("COMPGEN_CONFIG"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var overlay Config
			if err := yaml.Unmarshal(data, &overlay); err == nil {
				mergeConfig(&cfg, overlay)
			}
		}
	}
	return cfg
}

func mergeConfig(base *Config, overlay Config) {
	fields := []struct {
		dst *string
		src string
	}{
		{&base.Port, overlay.Port},
		{&base.DBUser, overlay.DBUser},
		{&base.DBPassword, overlay.DBPassword},
		{&base.DBHost, overlay.DBHost},
		{&base.DBPort, overlay.DBPort},
		{&base.DBName, overlay.DBName},
		{&base.JWTSecret, overlay.JWTSecret},
		{&base.OpenRouterAPIKey, overlay.OpenRouterAPIKey},
		{&base.OpenRouterBaseURL, overlay.OpenRouterBaseURL},
		{&base.Model, overlay.Model},
		{&base.MinIOEndpoint, overlay.MinIOEndpoint},
		{&base.MinIOAccessKey, overlay.MinIOAccessKey},
		{&base.MinIOSecretKey, overlay.MinIOSecretKey},
		{&base.MinIOBucket, overlay.MinIOBucket},
	}
	for _, f := range fields {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
