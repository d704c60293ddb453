package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	UploadDir           string              `mapstructure:"upload_dir"`
	AIProvider          string              `mapstructure:"ai_provider"`
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	EmbeddingModel      string              `mapstructure:"embedding_model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey        string              `mapstructure:"GEMINI_API_KEY"`
	ChunkSize           int                 `mapstructure:"chunk_size"`
	ChunkOverlap        int                 `mapstructure:"chunk_overlap"`
	TopK                int                 `mapstructure:"top_k"`
	SimilarityThreshold float64             `mapstructure:"similarity_threshold"`
	AskTemperature      float32             `mapstructure:"ask_temperature"`
	ExtractTemperature  float32             `mapstructure:"extract_temperature"`
	LogLevel            string              `mapstructure:"log_level"`
	LogPretty           bool                `mapstructure:"log_pretty"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Defaults match the reference deployment
	v.SetDefault("port", "8000")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("embedding_model", "gemini-embedding-001")
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("top_k", 3)
	v.SetDefault("similarity_threshold", 0.3)
	v.SetDefault("ask_temperature", 0.1)
	v.SetDefault("extract_temperature", 0.0)
	v.SetDefault("log_level", "info")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
