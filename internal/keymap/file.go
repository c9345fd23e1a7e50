package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// File is the on-disk shape of a mapping document. The format (JSON, YAML or
// TOML) is chosen by file extension.
type File struct {
	Device   DeviceSelect  `json:"device,omitempty" yaml:"device,omitempty" toml:"device,omitempty"`
	Axis     AxisDefaults  `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	Bindings []FileBinding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// DeviceSelect optionally pins the controller device the loop should read.
type DeviceSelect struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// AxisDefaults overrides the built-in hysteresis thresholds for every axis
// binding that does not set its own.
type AxisDefaults struct {
	Activate   *float64 `json:"activate,omitempty" yaml:"activate,omitempty" toml:"activate,omitempty"`
	Deactivate *float64 `json:"deactivate,omitempty" yaml:"deactivate,omitempty" toml:"deactivate,omitempty"`
}

// FileBinding is one mapping entry. Activate/Deactivate apply to axis
// controls only and fall back to the axis defaults when unset.
type FileBinding struct {
	Control    string   `json:"control" yaml:"control" toml:"control"`
	Key        string   `json:"key" yaml:"key" toml:"key"`
	Activate   *float64 `json:"activate,omitempty" yaml:"activate,omitempty" toml:"activate,omitempty"`
	Deactivate *float64 `json:"deactivate,omitempty" yaml:"deactivate,omitempty" toml:"deactivate,omitempty"`
}

// LoadFile reads and decodes a mapping document. It does not validate the
// bindings; Table does that.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("parse %s: %v", filepath.Base(path), err)}
	}
	return &f, nil
}

// Table resolves names, applies threshold defaults and builds the validated
// binding table.
func (f *File) Table() (*Table, error) {
	if len(f.Bindings) == 0 {
		return nil, &ConfigError{Reason: "no bindings defined"}
	}

	defActivate := DefaultActivate
	defDeactivate := DefaultDeactivate
	if f.Axis.Activate != nil {
		defActivate = *f.Axis.Activate
	}
	if f.Axis.Deactivate != nil {
		defDeactivate = *f.Axis.Deactivate
	}

	bindings := make([]Binding, 0, len(f.Bindings))
	for _, fb := range f.Bindings {
		control, err := ParseControl(fb.Control)
		if err != nil {
			return nil, err
		}
		key, ok := KeyCodeByName(fb.Key)
		if !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("control %s: unknown key %q", control, fb.Key)}
		}

		b := Binding{Control: control, Key: key}
		if control.Kind == KindAxis {
			b.Activate = defActivate
			b.Deactivate = defDeactivate
			if fb.Activate != nil {
				b.Activate = *fb.Activate
			}
			if fb.Deactivate != nil {
				b.Deactivate = *fb.Deactivate
			}
		}
		bindings = append(bindings, b)
	}
	return NewTable(bindings)
}

// Load is the one-step startup path: read, decode and validate a mapping
// document.
func Load(path string) (*File, *Table, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	t, err := f.Table()
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}
