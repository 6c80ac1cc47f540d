package config

import (
	"fmt"
	"strings"

	internal "github.com/feldspar-ai/textprep/textprep"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Prep PrepConfig `mapstructure:"prep"`
}

// PrepConfig stores dataset-preparation configurations.
type PrepConfig struct {
	DataPath       string `mapstructure:"dataPath"`
	Language       string `mapstructure:"language"`
	VectorizerMode string `mapstructure:"vectorizerMode"`
	WordpieceVocab string `mapstructure:"wordpieceVocab"`
	StopwordFile   string `mapstructure:"stopwordFile"`
	BatchSize      int    `mapstructure:"batchSize"`
	Shuffle        bool   `mapstructure:"shuffle"`
	DropLast       bool   `mapstructure:"dropLast"`
	Device         string `mapstructure:"device"`
	Workers        int    `mapstructure:"workers"`
	SplitSeed      int64  `mapstructure:"splitSeed"`
	MaxSeqLenGuard int    `mapstructure:"maxSeqLenGuard"`
	CappedSeqLen   int    `mapstructure:"cappedSeqLen"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("prep.language", internal.DefaultLanguage)
	viper.SetDefault("prep.vectorizerMode", internal.DefaultVectorizerMode)
	viper.SetDefault("prep.batchSize", internal.DefaultBatchSize)
	viper.SetDefault("prep.shuffle", true)
	viper.SetDefault("prep.dropLast", true)
	viper.SetDefault("prep.device", internal.DefaultDeviceName)
	viper.SetDefault("prep.workers", internal.DefaultWorkers)
	viper.SetDefault("prep.splitSeed", 0)
	viper.SetDefault("prep.maxSeqLenGuard", internal.DefaultSeqLenGuard)
	viper.SetDefault("prep.cappedSeqLen", internal.DefaultCappedSeqLen)

	viper.SetEnvPrefix(strings.ToUpper(internal.DefaultAppName))
	viper.AutomaticEnv() // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
