package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения.
// Загружается один раз при старте и дальше не изменяется.
type Config struct {
	// Server
	Port string
	Host string

	// Database (PostgreSQL)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Security
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Пути, доступные без авторизации
	ExcludedPaths []string

	// Cron
	ReminderCron string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:       getEnv("PORT", "8000"),
		Host:       getEnv("HOST", "0.0.0.0"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "tutor_platform"),

		SecretKey: getEnv("SECRET_KEY", "dev_secret_key_change_me"),
		Algorithm: getEnv("ALGORITHM", "HS256"),

		ReminderCron: getEnv("REMINDER_CRON", "@daily"),
	}

	// Парсим числовые значения
	if minutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")); err == nil {
		config.AccessTokenExpireMinutes = minutes
	} else {
		config.AccessTokenExpireMinutes = 60
	}

	for _, p := range strings.Split(getEnv("EXCLUDED_PATHS", "/auth/login,/health"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			config.ExcludedPaths = append(config.ExcludedPaths, p)
		}
	}

	return config, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// TokenTTL возвращает время жизни access-токена
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
