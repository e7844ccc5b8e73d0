package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/pkg/paths"
)

var log = logger.New("Config")

// Config 应用配置
type Config struct {
	HTTPPort        string
	DBPath          string
	AI              models.AIConfig
	LogLevel        logger.Level
	DuplicateWindow time.Duration
	ContextWindow   int
}

// Load 从环境变量加载配置，缺失项使用默认值
// API Key 是否配置在创建模型客户端时才校验
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("未找到 .env 文件，使用环境变量")
	}

	cfg := &Config{
		HTTPPort: getEnv("SERVER_PORT", "8080"),
		DBPath:   getEnv("DB_PATH", paths.DefaultDBPath()),
		AI: models.AIConfig{
			Provider:    models.AIProvider(getEnv("AI_PROVIDER", "openai")),
			APIKey:      getEnv("AI_API_KEY", ""),
			BaseURL:     getEnv("AI_BASE_URL", ""),
			ModelName:   getEnv("AI_MODEL", ""),
			Temperature: float32(getEnvFloat("AI_TEMPERATURE", 0.7)),
			MaxTokens:   getEnvInt("AI_MAX_TOKENS", 2048),
		},
		LogLevel:        logger.ParseLevel(getEnv("LOG_LEVEL", "info")),
		DuplicateWindow: time.Duration(getEnvInt("DUPLICATE_WINDOW_MINUTES", 5)) * time.Minute,
		ContextWindow:   getEnvInt("CONTEXT_WINDOW_SIZE", 10),
	}
	return cfg, nil
}

// getEnv 读取环境变量，未设置时返回默认值
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt 读取整型环境变量，解析失败时告警并返回默认值
func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("环境变量 %s 解析失败: %v，使用默认值 %d", key, err, fallback)
		return fallback
	}
	return n
}

// getEnvFloat 读取浮点环境变量，解析失败时告警并返回默认值
func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn("环境变量 %s 解析失败: %v，使用默认值 %g", key, err, fallback)
		return fallback
	}
	return f
}
