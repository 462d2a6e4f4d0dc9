package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "NVTRANSCODE"

type Base struct {
	ServiceName string `json:"service_name" mapstructure:"service_name"`
	Environment string `json:"environment" mapstructure:"environment"`
}

type Config struct {
	Base         `mapstructure:",squash"`
	ServerConfig ServerConfig `json:"server" mapstructure:"server"`
}

type ServerConfig struct {
	FfmpegBin string `json:"ffmpeg_bin" mapstructure:"ffmpeg_bin"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "nvtranscode")
	v.SetDefault("environment", "local")
	v.SetDefault("server.ffmpeg_bin", "ffmpeg")
}

// Load reads defaults, then the optional config file at path, then
// NVTRANSCODE_* environment variables (e.g. NVTRANSCODE_SERVER_FFMPEG_BIN).
// Nothing is ever written back.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
