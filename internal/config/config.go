package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"homework_bot/internal/apperr"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod    = 600 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "debug"
	// формат как у tgbotapi.APIEndpoint: токен и метод
	DefaultTelegramEndpoint = "https://api.telegram.org/bot%s/%s"

	envPracticumToken = "PRACTICUM_TOKEN"
	envTelegramToken  = "TELEGRAM_TOKEN"
	envTelegramChatID = "TELEGRAM_CHAT_ID"
	envConfigFile     = "HOMEWORK_BOT_CONFIG"
)

type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string

	Endpoint         string
	TelegramEndpoint string
	RetryPeriod      time.Duration
	RequestTimeout   time.Duration
	LogLevel         string
	Debug            bool
}

// settings - несекретная часть конфигурации из YAML файла
type settings struct {
	Endpoint       string `yaml:"endpoint"`
	RetryPeriod    string `yaml:"retry_period"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
	Debug          bool   `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Endpoint:         DefaultEndpoint,
		TelegramEndpoint: DefaultTelegramEndpoint,
		RetryPeriod:      DefaultRetryPeriod,
		RequestTimeout:   DefaultRequestTimeout,
		LogLevel:         DefaultLogLevel,
	}
}

// Load собирает конфигурацию: .env, затем YAML файл (если задан), затем переменные окружения.
// Возвращает ошибку вида apperr.KindConfiguration, если не хватает секретов.
func Load(path string, log zerolog.Logger) (*Config, error) {
	// Загружаем .env файл
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(envConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, apperr.Configuration("load settings", err)
		}
		log.Debug().Str("path", path).Msg("settings file loaded")
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, apperr.Configuration("read environment", err)
	}

	if err := cfg.CheckTokens(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckTokens проверяет, что заданы все три секрета. Пустая строка считается
// отсутствием значения, любое другое значение принимается как есть.
func (c *Config) CheckTokens() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, envPracticumToken)
	}
	if c.TelegramToken == "" {
		missing = append(missing, envTelegramToken)
	}
	if c.TelegramChatID == "" {
		missing = append(missing, envTelegramChatID)
	}
	if len(missing) > 0 {
		return apperr.Configuration("check tokens",
			fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	if s.Endpoint != "" {
		c.Endpoint = s.Endpoint
	}
	if s.RetryPeriod != "" {
		d, err := parseDuration(s.RetryPeriod)
		if err != nil {
			return fmt.Errorf("retry_period: %w", err)
		}
		c.RetryPeriod = d
	}
	if s.RequestTimeout != "" {
		d, err := parseDuration(s.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}
	c.Debug = s.Debug
	return nil
}

func (c *Config) overrideFromEnv() error {
	c.PracticumToken = os.Getenv(envPracticumToken)
	c.TelegramToken = os.Getenv(envTelegramToken)
	c.TelegramChatID = os.Getenv(envTelegramChatID)

	if endpoint := os.Getenv("PRACTICUM_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}
	if endpoint := os.Getenv("TELEGRAM_API_ENDPOINT"); endpoint != "" {
		c.TelegramEndpoint = endpoint
	}
	if v := os.Getenv("RETRY_PERIOD"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("RETRY_PERIOD: %w", err)
		}
		c.RetryPeriod = d
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}
	// Читаем режим отладки
	if debugStr := os.Getenv("BOT_DEBUG"); debugStr != "" {
		c.Debug, _ = strconv.ParseBool(debugStr)
	}
	return nil
}

// parseDuration понимает и "10m", и число секунд "600".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, errors.New("must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	return d, nil
}
