package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tarnadas/wasm-pack/internal/config"
	"github.com/Tarnadas/wasm-pack/internal/descriptor"
	"github.com/Tarnadas/wasm-pack/internal/manifest"
	"github.com/Tarnadas/wasm-pack/internal/pack"
)

// addProfileFlags registers --profile and its shorthands.
func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "build profile whose overrides to apply (dev, release, profiling)")
	cmd.Flags().Bool("dev", false, "shorthand for --profile dev")
	cmd.Flags().Bool("release", false, "shorthand for --profile release")
	cmd.Flags().Bool("profiling", false, "shorthand for --profile profiling")
	cmd.MarkFlagsMutuallyExclusive("profile", "dev", "release", "profiling")
	cmd.Flags().Bool("recurse", false, "search parent directories for Cargo.toml")
}

// addOutputFlags registers the flags shaping the generated package.json.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out-dir", "d", "", "output directory, relative to the crate (default pkg)")
	cmd.Flags().String("out-name", "", "prefix for generated file names (default: crate name)")
	cmd.Flags().StringP("scope", "s", "", "npm scope for the package name")
	cmd.Flags().StringP("target", "t", "", fmt.Sprintf("output target, one of %v", descriptor.TargetNames()))
	cmd.Flags().Bool("no-typescript", false, "do not list TypeScript declarations")
	addProfileFlags(cmd)
}

// applyFlagOverrides applies explicitly set CLI flag values to the loaded config.
// Flags a command does not define are ignored.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"out-dir", &cfg.OutDir},
		{"out-name", &cfg.OutName},
		{"scope", &cfg.Scope},
		{"target", &cfg.Target},
		{"profile", &cfg.Profile},
	}
	for _, f := range stringFlags {
		if flags.Lookup(f.name) != nil && flags.Changed(f.name) {
			*f.dst, _ = flags.GetString(f.name)
		}
	}

	for _, name := range []string{manifest.ProfileDev, manifest.ProfileRelease, manifest.ProfileProfiling} {
		if flags.Lookup(name) != nil {
			if v, _ := flags.GetBool(name); v {
				cfg.Profile = name
			}
		}
	}

	if flags.Lookup("no-typescript") != nil && flags.Changed("no-typescript") {
		cfg.NoTypescript, _ = flags.GetBool("no-typescript")
	}
	if flags.Lookup("recurse") != nil && flags.Changed("recurse") {
		cfg.Recurse, _ = flags.GetBool("recurse")
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

// packOptions turns the resolved configuration into pipeline options.
func packOptions(cfg config.Config, path string) (pack.Options, error) {
	target, err := descriptor.ParseTarget(cfg.Target)
	if err != nil {
		return pack.Options{}, err
	}
	return pack.Options{
		Path:      path,
		Recurse:   cfg.Recurse,
		OutDir:    cfg.OutDir,
		OutName:   cfg.OutName,
		Scope:     cfg.Scope,
		SkipTypes: cfg.NoTypescript,
		Target:    target,
		Profile:   cfg.Profile,
	}, nil
}

// loadConfig reads configuration and applies the command's flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	applyFlagOverrides(cmd, &cfg)
	return cfg, nil
}

// crateArg returns the optional crate path argument, defaulting to the cwd.
func crateArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
