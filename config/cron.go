package config

type Cron struct {
	// robfig/cron 秒級表達式
	InventorySpec string `mapstructure:"INVENTORY_SPEC" json:"inventory_spec" yaml:"inventory_spec"`
}
