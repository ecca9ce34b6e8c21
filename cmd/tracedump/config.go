package main

import "github.com/BurntSushi/toml"

// Config holds tracedump's persisted preferences, loaded from an optional
// TOML file pointed at by --config. Flags passed on the command line
// override whatever the config file set.
type Config struct {
	OutputFormat string `toml:"output_format"`
	MaxCalls     int    `toml:"max_calls"`
	Color        bool   `toml:"color"`
}

func defaultConfig() Config {
	return Config{OutputFormat: "text", Color: true}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
