package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TickInterval    time.Duration `mapstructure:"tick_interval"`
}

type PlaybackConfig struct {
	// Duration is the wall-clock time for a full traversal of the path.
	Duration time.Duration `mapstructure:"duration"`
}

type AssetsConfig struct {
	// Optional file-backed sources. When empty the embedded defaults are
	// loaded instead. File-backed sources are watched for changes.
	ProgramFile string `mapstructure:"program_file"`
	ModelFile   string `mapstructure:"model_file"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.tick_interval", "16ms")
	viper.SetDefault("playback.duration", "5s")
	viper.SetDefault("upload.max_bytes", 32<<20)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("OTV")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Playback.Duration <= 0 {
		return nil, fmt.Errorf("playback duration must be positive, got %s", config.Playback.Duration)
	}
	if config.Server.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", config.Server.TickInterval)
	}

	return &config, nil
}
