package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tarnadas/wasm-pack/internal/pack"
	"github.com/Tarnadas/wasm-pack/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a crate's Cargo.toml without writing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	addProfileFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	v, warnings, err := pack.New(newLogger(cfg)).Check(crateArg(args), cfg.Recurse, cfg.Profile)
	if err != nil {
		printer.Warnings(warnings)
		return err
	}
	printer.CheckResult(v, warnings)
	return nil
}
