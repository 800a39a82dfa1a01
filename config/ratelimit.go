package config

type RateLimit struct {
	Enabled       bool  `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	Limit         int   `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"window_seconds" yaml:"window_seconds"`
}
