package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	// StockX catalog API.
	StockXAPIKey       string `env:"STOCKX_API_KEY,required"`
	StockXClientID     string `env:"STOCKX_CLIENT_ID"`
	StockXClientSecret string `env:"STOCKX_CLIENT_SECRET"`
	StockXRefreshToken string `env:"STOCKX_REFRESH_TOKEN"`
	StockXTokenURL     string `env:"STOCKX_TOKEN_URL" envDefault:"https://accounts.stockx.com/oauth/token"`
	StockXBaseURL      string `env:"STOCKX_BASE_URL" envDefault:"https://api.stockx.com/v2"`

	// Generic UPC lookup fallback.
	UPCBaseURL string `env:"UPC_BASE_URL" envDefault:"https://api.upcitemdb.com/prod/trial"`

	// Storefront inventory REST endpoint.
	InventoryBaseURL string `env:"INVENTORY_BASE_URL,required"`
	InventoryAPIKey  string `env:"INVENTORY_API_KEY,required"`

	StorageBucket string `env:"STORAGE_BUCKET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
