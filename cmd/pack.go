package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tarnadas/wasm-pack/internal/pack"
	"github.com/Tarnadas/wasm-pack/internal/ui"
)

var packCmd = &cobra.Command{
	Use:   "pack [path]",
	Short: "Validate Cargo.toml and write package.json into the output directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPack,
}

func init() {
	addOutputFlags(packCmd)
	packCmd.Flags().Bool("child", false, "merge into the package.json already in the output directory")
	packCmd.Flags().StringArray("output-file", nil, "extra file produced by the build to list in files (repeatable)")

	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := packOptions(cfg, crateArg(args))
	if err != nil {
		return err
	}
	opts.IsChild, _ = cmd.Flags().GetBool("child")
	opts.OutputFiles, _ = cmd.Flags().GetStringArray("output-file")

	res, err := pack.New(newLogger(cfg)).Synthesize(opts)
	printer.Warnings(res.Warnings)
	if err != nil {
		return err
	}
	printer.PackResult(res.Descriptor, res.OutDir, opts.IsChild)
	return nil
}
