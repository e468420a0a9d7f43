package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	AWS         AWSConfig
	Tables      TablesConfig
	Media       MediaConfig
	Cognito     CognitoConfig
	Bedrock     BedrockConfig
	Location    LocationConfig
	Redis       RedisConfig
	Agora       AgoraConfig
	SNS         SNSConfig
	OTEL        OTELConfig
	Environment string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins string
}

// AWSConfig holds the shared AWS SDK configuration
type AWSConfig struct {
	Region string
	// Endpoint overrides the AWS endpoint for all services, e.g. a
	// localstack URL during development. Empty means the real AWS.
	Endpoint string
}

// TablesConfig holds the DynamoDB table names
type TablesConfig struct {
	Users         string
	Reports       string
	Alerts        string
	Verifications string
}

// MediaConfig holds S3 media storage configuration
type MediaConfig struct {
	Bucket string
}

// CognitoConfig holds the Cognito user pool configuration
type CognitoConfig struct {
	UserPoolID string
	ClientID   string
}

// BedrockConfig holds the Bedrock model configuration
type BedrockConfig struct {
	ModelID string
}

// LocationConfig holds the place index configuration.
// Provider selects between the AWS Location Service adapter and the
// mock adapter used in development and tests.
type LocationConfig struct {
	Provider        string
	PlaceIndex      string
	RouteCalculator string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AgoraConfig holds voice session credentials
type AgoraConfig struct {
	AppID       string
	Certificate string
}

// SNSConfig holds the OTP delivery topic. Empty disables SNS delivery
// and codes are only logged.
type SNSConfig struct {
	OTPTopicARN string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "ap-southeast-1"),
			Endpoint: getEnv("AWS_ENDPOINT_URL", ""),
		},
		Tables: TablesConfig{
			Users:         getEnv("USERS_TABLE", "PollutionApp-Users"),
			Reports:       getEnv("REPORTS_TABLE", "PollutionApp-Reports"),
			Alerts:        getEnv("ALERTS_TABLE", "PollutionApp-HealthAlerts"),
			Verifications: getEnv("VERIFICATIONS_TABLE", "PollutionApp-Verifications"),
		},
		Media: MediaConfig{
			Bucket: getEnv("MEDIA_BUCKET", "pollution-app-media-uploads"),
		},
		Cognito: CognitoConfig{
			UserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
			ClientID:   getEnv("COGNITO_CLIENT_ID", ""),
		},
		Bedrock: BedrockConfig{
			ModelID: getEnv("BEDROCK_MODEL_ID", "anthropic.claude-v2"),
		},
		Location: LocationConfig{
			Provider:        getEnv("LOCATION_PROVIDER", "mock"),
			PlaceIndex:      getEnv("LOCATION_PLACE_INDEX", "pollution-app-places"),
			RouteCalculator: getEnv("LOCATION_ROUTE_CALCULATOR", "pollution-app-routes"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Agora: AgoraConfig{
			AppID:       getEnv("AGORA_APP_ID", ""),
			Certificate: getEnv("AGORA_APP_CERTIFICATE", ""),
		},
		SNS: SNSConfig{
			OTPTopicARN: getEnv("OTP_TOPIC_ARN", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "pollution-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
