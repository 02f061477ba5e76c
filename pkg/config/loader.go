package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "SIGNALER"

const configFile = "signaler.yaml"

// LoadConfig loads the configuration file into the given struct and
// applies environment variables with the SIGNALER_ prefix on top.
// Params from the config should be in uppercase separated with _.
// A missing config file is not an error, the environment alone is used.
func LoadConfig(config any) error {
	dirs := []string{".", "configs", "../../configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home+"/.signaler")
	}
	err := fig.Load(config, fig.File(configFile), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return LoadConfigEnv(config)
	}
	return err
}

func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}
