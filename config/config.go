package config

const (
	BuildVersion   = "v0.1.0-BUILD_VERSION"
	StorageVersion = 1

	DefaultRPCPort      = 7239
	DefaultRateLimit    = 100
	DefaultRateBurst    = 200
	DefaultCacheSize    = 32
	DefaultStorageDir   = "fraction-data"
	EnvironmentRPCNode  = "FRACTION_RPC"
	RegisterNameMaxSize = 256
)
