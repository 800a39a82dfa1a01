package config

type Payment struct {
	SecretKey         string `mapstructure:"SECRET_KEY" json:"secret_key" yaml:"secret_key"`
	BaseURL           string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	Currency          string `mapstructure:"CURRENCY" json:"currency" yaml:"currency"`
	TimeoutSeconds    int    `mapstructure:"TIMEOUT_SECONDS" json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxNetworkRetries int    `mapstructure:"MAX_NETWORK_RETRIES" json:"max_network_retries" yaml:"max_network_retries"`
}
