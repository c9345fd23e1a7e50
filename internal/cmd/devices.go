package cmd

import (
	"fmt"
	"log/slog"

	"github.com/maun/co2key/internal/device"
)

// Devices lists connected controllers so the user can fill the device
// section of a mapping file.
type Devices struct{}

func (d *Devices) Run(logger *slog.Logger) error {
	infos, err := device.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		logger.Info("no controllers found")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%s\t%q\tbuttons=%d axes=%d hats=%d\n",
			info.Path, info.Name, info.Buttons, info.Axes, info.Hats)
	}
	return nil
}
