package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger         `mapstructure:"logger"`
	DB           Database       `mapstructure:"database"`
	API          API            `mapstructure:"api"`
	Scanner      Scanner        `mapstructure:"scanner"`
	Scheduler    Scheduler      `mapstructure:"scheduler"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	Cache        Cache          `mapstructure:"cache"`
	SMTP         SMTP           `mapstructure:"smtp"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// WatchlistItem is one tracked symbol with its display name. YahooSymbol
// overrides the default "<code><suffix>" mapping for instruments like
// indices whose Yahoo code differs from the exchange ticker.
type WatchlistItem struct {
	Code        string `mapstructure:"code"`
	Name        string `mapstructure:"name"`
	YahooSymbol string `mapstructure:"yahoo_symbol"`
}

type Scanner struct {
	MaxConcurrency int             `mapstructure:"max_concurrency"`
	FetchTimeout   time.Duration   `mapstructure:"fetch_timeout"`
	Watchlist      []WatchlistItem `mapstructure:"watchlist"`
}

// Items returns the tracked watchlist, falling back to the default NSE set
// when none is configured.
func (s Scanner) Items() []WatchlistItem {
	if len(s.Watchlist) > 0 {
		return s.Watchlist
	}
	return []WatchlistItem{
		{Code: "RELIANCE", Name: "Reliance Industries"},
		{Code: "TCS", Name: "Tata Consultancy Services"},
		{Code: "INFY", Name: "Infosys"},
		{Code: "HDFCBANK", Name: "HDFC Bank"},
		{Code: "NIFTY50", Name: "Nifty 50 Index", YahooSymbol: "^NSEI"},
	}
}

type Scheduler struct {
	Enabled         bool          `mapstructure:"enabled"`
	CronExpression  string        `mapstructure:"cron_expression"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	SymbolSuffix        string        `mapstructure:"symbol_suffix"`
	LookbackMonths      int           `mapstructure:"lookback_months"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	BarTTL            time.Duration `mapstructure:"bar_ttl"`
}

type SMTP struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments set environment variables directly.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("scanner.max_concurrency", 5)
	viper.SetDefault("scanner.fetch_timeout", "30s")
	viper.SetDefault("scheduler.enabled", true)
	// First day of every month at midnight, same cadence as the monthly candles.
	viper.SetDefault("scheduler.cron_expression", "0 0 1 * *")
	viper.SetDefault("scheduler.timeout_duration", "10m")
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", "15s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.symbol_suffix", ".NS")
	viper.SetDefault("yahoo_finance.lookback_months", 12)
	viper.SetDefault("cache.default_expiration", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.bar_ttl", "15m")
	viper.SetDefault("database.ssl_mode", "disable")
}
