package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Admin holds admin HTTP endpoint parameters (metrics, health, inventory dump).
type Admin struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bind_address" validate:"required_if=Enabled true"`
}

// ItemStoneCache holds parameters of the item stone LRU.
type ItemStoneCache struct {
	Size int           `yaml:"size" validate:"min=0"` // 0 = без кеша
	TTL  time.Duration `yaml:"ttl"`
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	Database  DatabaseConfig `yaml:"database"`
	Inventory Inventory      `yaml:"inventory"`
	Trade     Trade          `yaml:"trade"`
	Data      Data           `yaml:"data"`
	Admin     Admin          `yaml:"admin"`

	ItemStoneCache ItemStoneCache `yaml:"item_stone_cache"`

	// Per-player outbox capacity (пакеты сверх лимита отбрасываются).
	SendQueueSize int `yaml:"send_queue_size" validate:"min=1"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "aiongo",
			Password: "aiongo",
			DBName:   "aiongo",
			SSLMode:  "disable",
		},
		Inventory: Inventory{CubeLimit: 27},
		Trade:     DefaultTrade(),
		Data: Data{
			ItemsPath:      "data/items.yaml",
			GoodsListsPath: "data/goods_lists.yaml",
			TradeListsPath: "data/trade_lists.yaml",
		},
		Admin: Admin{
			Enabled:     true,
			BindAddress: "127.0.0.1:8090",
		},
		ItemStoneCache: ItemStoneCache{
			Size: 4096,
			TTL:  10 * time.Minute,
		},
		SendQueueSize: 256,
		LogLevel:      "info",
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate проверяет struct tags конфига.
func (c GameServer) Validate() error {
	return validator.New().Struct(c)
}
