package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Init sets defaults and loads configuration from the given file plus
// LIVELOOK_* environment overrides. Values are read at call sites via
// viper.GetString.
func Init(cfgFile string) error {
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("nats.addr", "nats://127.0.0.1:4222")
	viper.SetDefault("auth_service.addr", "localhost:50051")
	viper.SetDefault("app.tracking_namespace", "livelook")
	viper.SetDefault("diagnostics.addr", ":3002")

	viper.SetEnvPrefix("livelook")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}

	viper.SetConfigFile(cfgFile)
	return viper.ReadInConfig()
}
