package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SetDefaults registers the default value of every config key.
func SetDefaults() {
	viper.SetDefault("slides", "~/Pictures/slides")
	viper.SetDefault("shuffle", true)
	viper.SetDefault("limit", 10)
	viper.SetDefault("interval_ms", 5000)
	viper.SetDefault("transition_ms", 3000)
	viper.SetDefault("resize_check_frames", 20)
	viper.SetDefault("max_texture_size", 4096)
	viper.SetDefault("width", 1280)
	viper.SetDefault("height", 720)
	viper.SetDefault("fullscreen", false)
	viper.SetDefault("vsync", true)
	viper.SetDefault("framerate_limit", 60)
	viper.SetDefault("debug", false)
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fadeshow")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/fadeshow")
		viper.AddConfigPath("/etc/xdg/fadeshow")
	}

	SetDefaults()

	viper.SetEnvPrefix("fadeshow")
	viper.AutomaticEnv() // read environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		log.Debug("no config file found, using defaults")
		err = nil
	}
	cobra.CheckErr(err)

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
}
