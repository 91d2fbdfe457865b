package config

import "fmt"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"min=1,max=65535"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode" validate:"oneof=disable require verify-ca verify-full prefer allow"`

	// DSNOverride — готовый DSN (из AIONGO_DB_DSN), имеет приоритет над полями выше.
	DSNOverride string `yaml:"dsn"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Inventory holds cube parameters.
type Inventory struct {
	CubeLimit int `yaml:"cube_limit" validate:"min=1,max=1000"`
}

// Partial buy policies.
const (
	// PartialBuyDebit — Kinah списывается, даже если выдались не все строки.
	PartialBuyDebit = "debit"
	// PartialBuyRollback — выданные строки откатываются, Kinah не списывается.
	PartialBuyRollback = "rollback"
)

// Trade holds NPC shop pricing.
type Trade struct {
	BuyPriceMultiplier int64  `yaml:"buy_price_multiplier" validate:"min=1"`
	SellPriceDivisor   int64  `yaml:"sell_price_divisor" validate:"min=1"`
	PartialBuyPolicy   string `yaml:"partial_buy_policy" validate:"oneof=debit rollback"`
}

// DefaultTrade returns x2 buy markup, /2 sell markdown, debit policy.
func DefaultTrade() Trade {
	return Trade{
		BuyPriceMultiplier: 2,
		SellPriceDivisor:   2,
		PartialBuyPolicy:   PartialBuyDebit,
	}
}

// Data holds paths of static catalog files.
type Data struct {
	ItemsPath      string `yaml:"items_path" validate:"required"`
	GoodsListsPath string `yaml:"goods_lists_path" validate:"required"`
	TradeListsPath string `yaml:"trade_lists_path" validate:"required"`
}
