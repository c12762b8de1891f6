package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tarnadas/wasm-pack/internal/manifest"
	"github.com/Tarnadas/wasm-pack/internal/pack"
	"github.com/Tarnadas/wasm-pack/internal/ui"
	"github.com/Tarnadas/wasm-pack/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate package.json whenever Cargo.toml or a LICENSE file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	addOutputFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := packOptions(cfg, crateArg(args))
	if err != nil {
		return err
	}

	crateDir, err := manifest.Locate(opts.Path, opts.Recurse)
	if err != nil {
		return err
	}
	opts.Path, opts.Recurse = crateDir, false

	packer := pack.New(newLogger(cfg))
	regenerate := func() {
		res, err := packer.Synthesize(opts)
		printer.Warnings(res.Warnings)
		if err != nil {
			printer.Error(err.Error())
			return
		}
		printer.PackResult(res.Descriptor, res.OutDir, false)
	}

	w, err := watch.New(crateDir, cfg.WatchDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	regenerate()
	printer.WatchStarted(crateDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			printer.WatchChange(change.File)
			if change.Kind == watch.ManifestRemoved {
				printer.Warning(manifest.FileName + " was removed; waiting for it to come back")
				continue
			}
			regenerate()
		}
	}
}

// setupSignalContext returns a context cancelled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
