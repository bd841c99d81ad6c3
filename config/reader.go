package config

import (
	"os"

	"github.com/MixinNetwork/fraction/logger"
	"github.com/pelletier/go-toml"
)

type Custom struct {
	Logger struct {
		Level   int    `toml:"level"`
		Filter  string `toml:"filter"`
		Limiter int    `toml:"limiter"`
	} `toml:"logger"`
	Storage struct {
		Dir        string `toml:"dir"`
		ValueLogGC bool   `toml:"value-log-gc"`
	} `toml:"storage"`
	RPC struct {
		Port      int     `toml:"port"`
		RateLimit float64 `toml:"rate-limit"`
		RateBurst int     `toml:"rate-burst"`
		CacheSize int     `toml:"cache-size"`
	} `toml:"rpc"`
}

func Initialize(file string) (*Custom, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var config Custom
	err = toml.Unmarshal(f, &config)
	if err != nil {
		return nil, err
	}
	config.fillDefaults()
	return &config, nil
}

func Default() *Custom {
	var config Custom
	config.fillDefaults()
	return &config
}

func (c *Custom) fillDefaults() {
	if c.Logger.Level == 0 {
		c.Logger.Level = logger.INFO
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultStorageDir
	}
	if c.RPC.Port == 0 {
		c.RPC.Port = DefaultRPCPort
	}
	if c.RPC.RateLimit == 0 {
		c.RPC.RateLimit = DefaultRateLimit
	}
	if c.RPC.RateBurst == 0 {
		c.RPC.RateBurst = DefaultRateBurst
	}
	if c.RPC.CacheSize == 0 {
		c.RPC.CacheSize = DefaultCacheSize
	}
}

// Apply pushes the logger section to the logger package.
func (c *Custom) Apply() error {
	logger.SetLevel(c.Logger.Level)
	logger.SetLimiter(c.Logger.Limiter)
	return logger.SetFilter(c.Logger.Filter)
}
