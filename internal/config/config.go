package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// viper のキー。AutomaticEnv により大文字の環境変数名（GEMINI_API_KEY など）から読まれます。
const (
	KeyGeminiAPIKey         = "gemini_api_key"
	KeyGeminiModel          = "gemini_model"
	KeyGeminiBaseURL        = "gemini_base_url"
	KeyGeminiAPIVersion     = "gemini_api_version"
	KeyGeminiTimeout        = "gemini_timeout"
	KeyListenAddr           = "listen_addr"
	KeyLogLevel             = "log_level"
	KeyLogFormat            = "log_format"
	KeyPreferIPv4           = "prefer_ipv4"
	KeyCORSAllowedOrigins   = "cors_allowed_origins"
	KeySessionIdleTTL       = "session_idle_ttl"
	KeySessionPruneInterval = "session_prune_interval"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	GeminiAPIVersion string
	// GeminiTimeout は1回の生成呼び出しの上限です。0 なら上限なし。
	GeminiTimeout time.Duration

	ListenAddr string

	LogLevel  string
	LogFormat string

	PreferIPv4 bool

	CORSAllowedOrigins []string

	SessionIdleTTL       time.Duration
	SessionPruneInterval time.Duration
}

// SetDefaults は全キーのデフォルト値を登録します。
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGeminiAPIKey, "")
	v.SetDefault(KeyGeminiModel, "gemini-2.5-flash-image")
	v.SetDefault(KeyGeminiBaseURL, "")
	v.SetDefault(KeyGeminiAPIVersion, "")
	v.SetDefault(KeyGeminiTimeout, time.Duration(0))
	v.SetDefault(KeyListenAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyPreferIPv4, true)
	v.SetDefault(KeyCORSAllowedOrigins, "")
	v.SetDefault(KeySessionIdleTTL, 2*time.Hour)
	v.SetDefault(KeySessionPruneInterval, 5*time.Minute)
}

// Load は .env（あれば）、環境変数、v にバインド済みのフラグから設定を読み込みます。
// API キーを読むのはここだけです。
func Load(v *viper.Viper) (Config, error) {
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		GeminiAPIKey:         strings.TrimSpace(v.GetString(KeyGeminiAPIKey)),
		GeminiModel:          strings.TrimSpace(v.GetString(KeyGeminiModel)),
		GeminiBaseURL:        strings.TrimSpace(v.GetString(KeyGeminiBaseURL)),
		GeminiAPIVersion:     strings.TrimSpace(v.GetString(KeyGeminiAPIVersion)),
		GeminiTimeout:        v.GetDuration(KeyGeminiTimeout),
		ListenAddr:           strings.TrimSpace(v.GetString(KeyListenAddr)),
		LogLevel:             strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:            strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		PreferIPv4:           v.GetBool(KeyPreferIPv4),
		CORSAllowedOrigins:   splitCSV(v.GetString(KeyCORSAllowedOrigins)),
		SessionIdleTTL:       v.GetDuration(KeySessionIdleTTL),
		SessionPruneInterval: v.GetDuration(KeySessionPruneInterval),
	}

	if cfg.GeminiAPIKey == "" {
		return Config{}, errors.New("GEMINI_API_KEY is required")
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}

	if cfg.GeminiTimeout < 0 {
		return Config{}, fmt.Errorf("GEMINI_TIMEOUT must not be negative, got %s", cfg.GeminiTimeout)
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash-image"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = 2 * time.Hour
	}
	if cfg.SessionPruneInterval <= 0 {
		cfg.SessionPruneInterval = 5 * time.Minute
	}

	return cfg, nil
}

func splitCSV(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
