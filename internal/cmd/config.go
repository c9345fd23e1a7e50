package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/maun/co2key/internal/configpaths"
	"github.com/maun/co2key/internal/keymap"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a mapping file template"`
}

// ConfigInit scaffolds a mapping file the user can edit.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to mapping.<format>)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInit) Run() error {
	template := mappingTemplate()

	dest := c.Output
	if dest == "" {
		dest = "mapping." + c.Format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch c.Format {
	case "yaml":
		data, err = yaml.Marshal(template)
	case "toml":
		data, err = toml.Marshal(template)
	default:
		data, err = json.MarshalIndent(template, "", "  ")
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	fmt.Println("wrote", dest)
	return nil
}

// mappingTemplate is a starting point: WASD on the left stick, space on the
// south button, arrows on the hat.
func mappingTemplate() keymap.File {
	activate := keymap.DefaultActivate
	deactivate := keymap.DefaultDeactivate
	return keymap.File{
		Axis: keymap.AxisDefaults{Activate: &activate, Deactivate: &deactivate},
		Bindings: []keymap.FileBinding{
			{Control: "axis_0_neg", Key: "a"},
			{Control: "axis_0_pos", Key: "d"},
			{Control: "axis_1_neg", Key: "w"},
			{Control: "axis_1_pos", Key: "s"},
			{Control: "button_0", Key: "space"},
			{Control: "hat_0_up", Key: "up"},
			{Control: "hat_0_down", Key: "down"},
			{Control: "hat_0_left", Key: "left"},
			{Control: "hat_0_right", Key: "right"},
		},
	}
}
