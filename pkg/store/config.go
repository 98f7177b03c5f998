package store

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the data documents live.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the data directory: a `.habit` config file or HABIT_*
// environment variables may override the conventional per-user data location
// (XDG data dir, ~/.local/share/habit).
func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultDataPath())
	viper.SetConfigName(".habit") // .yaml is implicit
	viper.SetEnvPrefix("HABIT")
	viper.AutomaticEnv()

	if override := os.Getenv("HABIT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	return &fileConfig{Path: path}, nil
}

func defaultDataPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "habit")
	}
	return "~/.local/share/habit"
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
