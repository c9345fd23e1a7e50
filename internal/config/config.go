// Package config defines the CLI surface parsed by Kong.
package config

import "github.com/maun/co2key/internal/cmd"

// Log holds the logging options shared by every command.
type Log struct {
	Level   string `help:"Log level (trace|debug|info|warn|error)" default:"info" env:"CO2KEY_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"CO2KEY_LOG_FILE"`
	RawFile string `help:"Write raw controller samples to this file" env:"CO2KEY_LOG_RAW_FILE"`
}

// CLI is the root command structure. Values can come from flags, env vars
// or a JSON/YAML/TOML config file, in that priority order.
type CLI struct {
	ConfigFile string `name:"config" help:"Path to a CLI config file" env:"CO2KEY_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Run       cmd.Run           `cmd:"" help:"Translate controller input into keyboard events"`
	Devices   cmd.Devices       `cmd:"" help:"List connected controllers"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
