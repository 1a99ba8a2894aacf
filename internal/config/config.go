package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Storage  *storageConfig
	GenAI    *genAIConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"unibuddy"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"UNIBUDDY_ADDRESS" default:":3000"`
	MetricsAddress string `envconfig:"UNIBUDDY_METRICS_ADDRESS" default:":8080"`
	BaseUrl        string `envconfig:"UNIBUDDY_BASE_URL" default:"http://localhost:3000"`
	LogLevel       string `envconfig:"UNIBUDDY_LOG_LEVEL" default:"info"`
	CorsOrigins    string `envconfig:"UNIBUDDY_CORS_ORIGINS" default:"http://localhost:5173"`
}

type storageConfig struct {
	Type            string `envconfig:"UNIBUDDY_STORAGE_TYPE" default:"filesystem"`
	UploadDir       string `envconfig:"UNIBUDDY_UPLOAD_DIR" default:"uploads"`
	Endpoint        string `envconfig:"UNIBUDDY_S3_ENDPOINT" default:""`
	Bucket          string `envconfig:"UNIBUDDY_S3_BUCKET" default:"lectures"`
	AccessKey       string `envconfig:"UNIBUDDY_S3_ACCESS_KEY" default:""`
	SecretAccessKey string `envconfig:"UNIBUDDY_S3_SECRET_KEY" default:""`
	UseSSL          bool   `envconfig:"UNIBUDDY_S3_USE_SSL" default:"false"`
}

type genAIConfig struct {
	ProjectID string `envconfig:"UNIBUDDY_GENAI_PROJECT_ID" default:""`
	Region    string `envconfig:"UNIBUDDY_GENAI_REGION" default:"us-central1"`
	Model     string `envconfig:"UNIBUDDY_GENAI_MODEL" default:"gemini-2.5-flash"`
}

// NewDefault returns a configuration suitable for tests: a shared in-memory
// sqlite database and ephemeral listen addresses.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{Type: "sqlite", Name: "file::memory:?cache=shared"},
		Service: &svcConfig{
			Address:        "localhost:0",
			MetricsAddress: "localhost:0",
			BaseUrl:        "http://localhost:3000",
			LogLevel:       "error",
			CorsOrigins:    "*",
		},
		Storage: &storageConfig{Type: "filesystem", UploadDir: "uploads"},
		GenAI:   &genAIConfig{Region: "us-central1", Model: "gemini-2.5-flash"},
	}
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
