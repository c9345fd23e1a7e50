package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maun/co2key/internal/device"
	"github.com/maun/co2key/internal/keymap"
	"github.com/maun/co2key/internal/log"
	"github.com/maun/co2key/internal/sink"
	"github.com/maun/co2key/internal/translate"
	"github.com/maun/co2key/internal/util"
)

type Run struct {
	Mapping  string `arg:"" name:"mapping" help:"Mapping file (.json, .yaml or .toml)" type:"path"`
	Device   string `help:"Controller device path (e.g. /dev/input/event5)" env:"CO2KEY_DEVICE"`
	Name     string `help:"Pick the controller whose name contains this string"`
	LegacyJS bool   `name:"legacy-js" help:"Read the legacy /dev/input/js* interface instead of evdev"`
	Verbose  int    `short:"v" type:"counter" help:"Print emitted key actions; give twice to also print raw controller samples"`
}

// Run is called by Kong when the run command is executed. The mapping is
// validated before any device is touched, so a bad config never leaves a
// half-acquired pipeline behind.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, table, err := keymap.Load(r.Mapping)
	if err != nil {
		return err
	}
	logger.Info("mapping loaded", "file", r.Mapping, "bindings", table.Len())

	opts := device.Options{Path: r.Device, Name: r.Name, LegacyJS: r.LegacyJS}
	if opts.Path == "" {
		opts.Path = f.Device.Path
	}
	if opts.Name == "" {
		opts.Name = f.Device.Name
	}

	src, err := device.Open(logger, opts)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	kb, err := sink.NewKeyboard()
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	if util.IsInteractive() {
		logger.Info("translating controller input, press Ctrl+C to stop")
	}

	loop := translate.NewLoop(src, table, kb, logger, rawLogger)
	return loop.Run(ctx)
}
