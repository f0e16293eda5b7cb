package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// An explicit cfgFile wins; otherwise brlex.yaml is looked up in the current
// directory, then in the user config directory (~/.config/brlex/brlex.yaml).
func Initialize(cfgFile string) error {
	v = viper.New()
	v.SetConfigType("yaml")

	configFileSet := false
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		configFileSet = true
	}

	if !configFileSet {
		if _, err := os.Stat("brlex.yaml"); err == nil {
			v.SetConfigFile("brlex.yaml")
			configFileSet = true
		}
	}

	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "brlex", "brlex.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file,
	// e.g. BRLEX_OUTPUT, BRLEX_LOG_FILE.
	v.SetEnvPrefix("BRLEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("input", "-")
	v.SetDefault("output", "-")
	v.SetDefault("errors", "")
	v.SetDefault("report", "")
	v.SetDefault("data", "")
	v.SetDefault("sqlite", "")
	v.SetDefault("verbose", false)

	// Log file rotation (empty log-file means stderr)
	v.SetDefault("log-file", "")
	v.SetDefault("log-max-size", 10)
	v.SetDefault("log-max-backups", 3)

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// BindFlags makes command-line flags override config and env values.
// Flags are bound by their own names.
func BindFlags(fs *pflag.FlagSet) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})
	return err
}

// FileUsed returns the config file read, or "".
func FileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetString retrieves a string configuration value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// Set sets a configuration value, mainly for tests.
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}
