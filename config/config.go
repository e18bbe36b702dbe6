package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Speech   SpeechConfig   `mapstructure:"speech"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Output format. Fixed per process, not negotiable per request.
type AudioConfig struct {
	SampleRate int `mapstructure:"sample_rate"`
	Channels   int `mapstructure:"channels"`
}

// Values used for /generate fields the client leaves out.
type DefaultsConfig struct {
	Prompt   string  `mapstructure:"prompt"`
	Duration float64 `mapstructure:"duration"`
	Tempo    int     `mapstructure:"tempo"`
}

// Backend selection
type BackendConfig struct {
	Type    string `mapstructure:"type"`    // "silence", "exec" or "speech"
	Command string `mapstructure:"command"` // exec: pipeline command line
	Timeout int    `mapstructure:"timeout"` // seconds per generation call
}

type SpeechConfig struct {
	Voice           string `mapstructure:"voice"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	viper.SetDefault("server.port", 8765)

	viper.SetDefault("audio.sample_rate", 44100)
	viper.SetDefault("audio.channels", 1)

	viper.SetDefault("defaults.prompt", "ambient electronic music")
	viper.SetDefault("defaults.duration", 10)
	viper.SetDefault("defaults.tempo", 120)

	viper.SetDefault("backend.type", "silence")
	viper.SetDefault("backend.timeout", 120)

	viper.SetDefault("speech.voice", "en-US-Standard-C")

	viper.BindEnv("backend.command", "ACESTEP_PIPELINE_COMMAND")
	viper.BindEnv("speech.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")

	// Allow environment variables, e.g. ACESTEP_SERVER_PORT, ACESTEP_BACKEND_TYPE
	viper.SetEnvPrefix("ACESTEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
