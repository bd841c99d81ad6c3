package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MixinNetwork/fraction/logger"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	require := require.New(t)

	custom, err := Initialize("./config.example.toml")
	require.Nil(err)

	require.Equal(logger.VERBOSE, custom.Logger.Level)
	require.Equal("", custom.Logger.Filter)
	require.Equal(10, custom.Logger.Limiter)

	require.Equal("/tmp/fraction", custom.Storage.Dir)
	require.Equal(true, custom.Storage.ValueLogGC)

	require.Equal(7239, custom.RPC.Port)
	require.Equal(50.0, custom.RPC.RateLimit)
	require.Equal(100, custom.RPC.RateBurst)
	require.Equal(DefaultCacheSize, custom.RPC.CacheSize)

	require.Nil(custom.Apply())
	require.Equal(logger.VERBOSE, logger.Level())
	logger.SetLevel(logger.INFO)
	logger.SetLimiter(0)

	_, err = Initialize("./config.missing.toml")
	require.NotNil(err)

	root, err := os.MkdirTemp("", "fraction-config-test")
	require.Nil(err)
	defer os.RemoveAll(root)
	file := filepath.Join(root, "bad.toml")
	require.Nil(os.WriteFile(file, []byte("[rpc]\nport = \"seven\"\n"), 0644))
	_, err = Initialize(file)
	require.NotNil(err)

	file = filepath.Join(root, "empty.toml")
	require.Nil(os.WriteFile(file, []byte{}, 0644))
	custom, err = Initialize(file)
	require.Nil(err)
	require.Equal(Default(), custom)
	require.Equal(logger.INFO, custom.Logger.Level)
	require.Equal(DefaultStorageDir, custom.Storage.Dir)
	require.Equal(DefaultRPCPort, custom.RPC.Port)
	require.Equal(float64(DefaultRateLimit), custom.RPC.RateLimit)
	require.Equal(DefaultRateBurst, custom.RPC.RateBurst)
}
