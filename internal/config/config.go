package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config collects every tunable the server reads from the environment.
type Config struct {
	Port         string
	ModelPath    string
	MetadataPath string
	LabelMapPath string
	NutritionCSV string
	FeedbackFile string
	UploadDir    string
	LogLevel     string
}

// Load reads .env when present, then the environment, applying defaults that
// match the repository layout.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         envOrDefault("PORT", "8080"),
		ModelPath:    envOrDefault("MODEL_PATH", "models/food101_resnet50.onnx"),
		MetadataPath: envOrDefault("METADATA_PATH", "models/model_metadata.json"),
		LabelMapPath: envOrDefault("LABEL_MAP_PATH", "data/label_map.json"),
		NutritionCSV: envOrDefault("NUTRITION_CSV_PATH", "data/usda_food_data.csv"),
		FeedbackFile: envOrDefault("FEEDBACK_FILE", "data/feedback.jsonl"),
		UploadDir:    envOrDefault("UPLOAD_DIR", "uploads"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
