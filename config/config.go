package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Auth      Auth            `mapstructure:"AUTH" json:"auth" yaml:"auth"`
	Payment   Payment         `mapstructure:"PAYMENT" json:"payment" yaml:"payment"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit"`
	Cron      Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
}

// ApplyDefaults fills zero values that the service cannot run without.
func (c *Configuration) ApplyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 5002
	}
	if c.App.Name == "" {
		c.App.Name = "assetflow"
	}
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = "AssetFlow"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = c.App.Name
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "usd"
	}
	if c.Payment.BaseURL == "" {
		c.Payment.BaseURL = "https://api.stripe.com"
	}
	if c.Payment.TimeoutSeconds <= 0 {
		c.Payment.TimeoutSeconds = 15
	}
	if c.Payment.MaxNetworkRetries == 0 {
		c.Payment.MaxNetworkRetries = 2 // 負數代表不重試
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = 30
	}
	if c.Cron.InventorySpec == "" {
		c.Cron.InventorySpec = "0 */1 * * * *"
	}
}
