package config

import "time"

const defaultTokenTTL = time.Hour

type Auth struct {
	// HS256 簽章密鑰
	TokenSecret string        `mapstructure:"TOKEN_SECRET" json:"token_secret" yaml:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"TOKEN_TTL" json:"token_ttl" yaml:"token_ttl"`
	Issuer      string        `mapstructure:"ISSUER" json:"issuer" yaml:"issuer"`
}
